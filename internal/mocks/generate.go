// Package mocks provides mock implementations for testing the T1250 loader.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the ports in internal/core.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	entities := mocks.NewMockEntityRepository(ctrl)
//	entities.EXPECT().FindJobsByBarcode(gomock.Any(), "4156536111").Return(nil, nil)
package mocks

// Generate mock for EntityRepository interface from internal/core package.
// FindJobsByBarcode, FindJobItemsByConnoteItem, InsertJob, InsertJobItem, UpdateJobAgent
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=entity_repository_mock.go github.com/target/t1250-loader/internal/core EntityRepository

// Generate mock for AgentRepository interface from internal/core package.
// GetByCode, Create
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=agent_repository_mock.go github.com/target/t1250-loader/internal/core AgentRepository

// Generate mock for CommsEventWriter interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=comms_event_writer_mock.go github.com/target/t1250-loader/internal/core CommsEventWriter

// Generate mock for LoadReportNotifier interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=load_report_notifier_mock.go github.com/target/t1250-loader/internal/core LoadReportNotifier
