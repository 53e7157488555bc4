package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Leganyst/salon-booking/internal/reminder"
	"github.com/Leganyst/salon-booking/internal/runtime"
)

// DigestCmd: разовая отправка дайджеста, например из cron.
type DigestCmd struct {
	Kind string `arg:"" help:"Which day to send: today or tomorrow."`
}

func (c *DigestCmd) Run(cc *Context) error {
	kind, err := reminder.ParseKind(c.Kind)
	if err != nil {
		return err
	}

	ctx, stop := runtime.SignalContext()
	defer stop()

	a, err := newApp(ctx, cc)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.job.RunDigest(ctx, kind)
	if err != nil {
		return fmt.Errorf("digest %s: %w", kind, err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
