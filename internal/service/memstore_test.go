package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/target/t1250-loader/internal/core"
	"github.com/target/t1250-loader/internal/domain/model"
)

// memStore is an in-memory core.Store with all-or-nothing transactions.
type memStore struct {
	mu    sync.Mutex
	state memState
	// failOn makes the named repository operation fail inside transactions.
	failOn string
}

type memState struct {
	jobs   []model.Job
	items  []model.JobItem
	nextID int64
}

func (s memState) clone() memState {
	return memState{
		jobs:   append([]model.Job(nil), s.jobs...),
		items:  append([]model.JobItem(nil), s.items...),
		nextID: s.nextID,
	}
}

func newMemStore() *memStore {
	return &memStore{state: memState{nextID: 1}}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(core.EntityRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{state: s.state.clone(), failOn: s.failOn}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

func (s *memStore) Jobs() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Job(nil), s.state.jobs...)
}

func (s *memStore) JobItems() []model.JobItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.JobItem(nil), s.state.items...)
}

func (s *memStore) countItemsByConnote(connote string) int {
	n := 0
	for _, it := range s.JobItems() {
		if it.ConnoteNbr == connote {
			n++
		}
	}
	return n
}

type memTx struct {
	state  memState
	failOn string
}

func (t *memTx) fail(op string) error {
	if t.failOn == op {
		return fmt.Errorf("%s: %w", op, errMemFailure)
	}
	return nil
}

var errMemFailure = errors.New("injected store failure")

func (t *memTx) FindJobsByBarcode(_ context.Context, barcode string) ([]model.Job, error) {
	if err := t.fail("find_jobs"); err != nil {
		return nil, err
	}
	var out []model.Job
	for _, j := range t.state.jobs {
		if j.CardRefNbr == barcode {
			out = append(out, j)
		}
	}
	return out, nil
}

func (t *memTx) FindJobItemsByConnoteItem(_ context.Context, connote, itemNbr string) ([]model.JobItem, error) {
	if err := t.fail("find_items"); err != nil {
		return nil, err
	}
	var out []model.JobItem
	for _, it := range t.state.items {
		if it.ConnoteNbr == connote && it.ItemNbr == itemNbr {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (t *memTx) InsertJob(_ context.Context, cols model.Columns) (int64, error) {
	if err := t.fail("insert_job"); err != nil {
		return 0, err
	}
	agentID, err := cols.Int64("agent_id")
	if err != nil {
		return 0, err
	}
	buID, err := cols.Int64("bu_id")
	if err != nil {
		return 0, err
	}
	id := t.state.nextID
	t.state.nextID++
	t.state.jobs = append(t.state.jobs, model.Job{
		ID:          id,
		AgentID:     agentID,
		BUID:        buID,
		CardRefNbr:  cols.String("card_ref_nbr"),
		ServiceCode: cols.IntPtr("service_code"),
		State:       cols.String("state"),
		Postcode:    cols.String("postcode"),
		Status:      model.StatusActive,
	})
	return id, nil
}

func (t *memTx) InsertJobItem(_ context.Context, cols model.Columns) (int64, error) {
	if err := t.fail("insert_job_item"); err != nil {
		return 0, err
	}
	jobID, err := cols.Int64("job_id")
	if err != nil {
		return 0, err
	}
	id := t.state.nextID
	t.state.nextID++
	t.state.items = append(t.state.items, model.JobItem{
		ID:         id,
		JobID:      jobID,
		ConnoteNbr: cols.String("connote_nbr"),
		ItemNbr:    cols.String("item_nbr"),
		EmailAddr:  cols.String("email_addr"),
		PhoneNbr:   cols.String("phone_nbr"),
		Pieces:     cols.IntPtr("pieces"),
		Status:     model.StatusActive,
	})
	return id, nil
}

func (t *memTx) UpdateJobAgent(_ context.Context, jobID, agentID int64) error {
	if err := t.fail("update_agent"); err != nil {
		return err
	}
	for i := range t.state.jobs {
		if t.state.jobs[i].ID == jobID {
			t.state.jobs[i].AgentID = agentID
			return nil
		}
	}
	return fmt.Errorf("job %d not found", jobID)
}

// memAgents is an in-memory core.AgentRepository.
type memAgents struct {
	mu     sync.Mutex
	agents map[string]model.Agent
	nextID int64
}

func newMemAgents(codes ...string) *memAgents {
	a := &memAgents{agents: map[string]model.Agent{}, nextID: 100}
	for _, c := range codes {
		_, _ = a.Create(context.Background(), model.CreateAgentRequest{Code: c, Name: "Agent " + c})
	}
	return a
}

func (a *memAgents) GetByCode(_ context.Context, code string) (*model.Agent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	ag, ok := a.agents[strings.ToUpper(code)]
	if !ok {
		return nil, model.ErrAgentNotFound
	}
	return &ag, nil
}

func (a *memAgents) Create(_ context.Context, req model.CreateAgentRequest) (*model.Agent, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	ag := model.Agent{ID: a.nextID, Code: strings.ToUpper(req.Code), Name: req.Name}
	a.nextID++
	a.agents[ag.Code] = ag
	return &ag, nil
}

// memComms records written comms events.
type memComms struct {
	mu     sync.Mutex
	events []model.CommsEvent
	err    error
}

func (c *memComms) Write(_ context.Context, ev model.CommsEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, ev)
	return nil
}

func (c *memComms) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.events))
	for i, ev := range c.events {
		out[i] = ev.Name()
	}
	return out
}
