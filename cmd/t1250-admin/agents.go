package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/target/t1250-loader/config"
	"github.com/target/t1250-loader/internal/core"
	"github.com/target/t1250-loader/internal/data"
	"github.com/target/t1250-loader/internal/domain/model"
)

type agentAddOptions struct {
	Code string
	Name string
}

func parseAgentAddFlags(args []string) (agentAddOptions, error) {
	fs := flag.NewFlagSet("agent-add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts agentAddOptions
	fs.StringVar(&opts.Code, "code", "", "Agent code as it appears in T1250 files (required)")
	fs.StringVar(&opts.Name, "name", "", "Agent display name")
	if err := fs.Parse(args); err != nil {
		return agentAddOptions{}, err
	}
	if strings.TrimSpace(opts.Code) == "" {
		return agentAddOptions{}, errors.New("--code is required")
	}
	return opts, nil
}

func runAgentAdd(cmdCtx *commandContext, args []string) error {
	opts, err := parseAgentAddFlags(args)
	if err != nil {
		return err
	}
	db, release, err := openDB(cmdCtx)
	if err != nil {
		return err
	}
	defer release()

	agent, err := data.NewAgentRepo(db).Create(cmdCtx.Ctx, model.CreateAgentRequest{Code: opts.Code, Name: opts.Name})
	if err != nil {
		return err
	}
	return printAgents(cmdCtx.Stdout, []model.Agent{*agent})
}

func parseCodesFlags(name string, args []string) ([]string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	var codes []string
	for _, c := range fs.Args() {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("usage: t1250-admin %s CODE...", name)
	}
	return codes, nil
}

func runAgentShow(cmdCtx *commandContext, args []string) error {
	codes, err := parseCodesFlags("agent-show", args)
	if err != nil {
		return err
	}
	db, release, err := openDB(cmdCtx)
	if err != nil {
		return err
	}
	defer release()

	repo := data.NewAgentRepo(db)
	var (
		found   []model.Agent
		missing []string
	)
	for _, code := range codes {
		agent, err := repo.GetByCode(cmdCtx.Ctx, code)
		switch {
		case errors.Is(err, model.ErrAgentNotFound):
			missing = append(missing, code)
		case err != nil:
			return err
		default:
			found = append(found, *agent)
		}
	}
	if err := printAgents(cmdCtx.Stdout, found); err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", model.ErrAgentNotFound, strings.Join(missing, ", "))
	}
	return nil
}

func runAgentCacheClear(cmdCtx *commandContext, args []string) error {
	codes, err := parseCodesFlags("agent-cache-clear", args)
	if err != nil {
		return err
	}
	client, release, err := openRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer release()

	cache := core.NewAgentCacheService(core.AgentCacheServiceOptions{
		Cache: data.NewRedisCacheRepo(data.RedisCacheRepoOptions{Client: client, Prefix: cmdCtx.Config.Redis.KeyPrefix}),
	})
	for _, code := range codes {
		if err := cache.InvalidateAgent(cmdCtx.Ctx, code); err != nil {
			return fmt.Errorf("invalidate %s: %w", code, err)
		}
		if err := writef(cmdCtx.Stdout, "cleared %s\n", strings.ToUpper(code)); err != nil {
			return err
		}
	}
	return nil
}

func runBusinessUnits(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("business-units", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	file := fs.String("file", cmdCtx.Config.Loader.BusinessUnitsFile, "Business unit YAML file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	units, err := config.LoadBusinessUnits(*file)
	if err != nil {
		return err
	}
	return printBusinessUnits(cmdCtx.Stdout, units.All())
}

func printAgents(w io.Writer, agents []model.Agent) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "ID\tCODE\tNAME\n"); err != nil {
		return err
	}
	for _, a := range agents {
		if err := writef(tw, "%d\t%s\t%s\n", a.ID, a.Code, a.Name); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printBusinessUnits(w io.Writer, units []model.BusinessUnit) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "ID\tTOKEN\tNAME\tCONDITIONS\n"); err != nil {
		return err
	}
	for _, bu := range units {
		conds := strings.Join(bu.Conditions.Enabled(), ",")
		if conds == "" {
			conds = "-"
		}
		if err := writef(tw, "%d\t%s\t%s\t%s\n", bu.ID, bu.Token, bu.Name, conds); err != nil {
			return err
		}
	}
	return tw.Flush()
}
