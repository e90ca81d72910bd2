package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
)

// Сервисы открывают транзакции сами, а все запросы идут через мок-репозитории,
// которым переданный executor безразличен. Поэтому в тестах достаточно
// заглушки драйвера, у которой Begin/Commit/Rollback — no-op, а любой
// настоящий запрос падает.

type stubConnector struct{}

func (stubConnector) Connect(context.Context) (driver.Conn, error) { return stubConn{}, nil }
func (stubConnector) Driver() driver.Driver                        { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("stub connection does not execute queries")
}
func (stubConn) Close() error              { return nil }
func (stubConn) Begin() (driver.Tx, error) { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func newStubDB() *sql.DB {
	return sql.OpenDB(stubConnector{})
}
