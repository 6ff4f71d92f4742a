package main

import (
	"context"
	"time"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/reminders"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package main -source=interfaces.go

type Sweeper interface {
	Run(ctx context.Context, now time.Time) (*reminders.Result, error)
}
