// Package mocks provides centralized mock implementations for testing.
//
// MemoryUnitOfWork is a working in-memory implementation of the store
// interfaces with transactional rollback, so service and HTTP tests can run
// without PostgreSQL. The remaining types are function-field or testify/mock
// doubles for single interfaces.
//
//	uow := mocks.NewMemoryUnitOfWork()
//	svc := service.NewTaskService(uow, nil)
package mocks
