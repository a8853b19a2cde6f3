// Command ordercli fills in and submits a pizza order from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/ghuser/pizzaorder/pkg/logger"
	"github.com/ghuser/pizzaorder/services/order/application/controller"
	"github.com/ghuser/pizzaorder/services/order/domain/models"
	domainsvcs "github.com/ghuser/pizzaorder/services/order/domain/services"
	"github.com/ghuser/pizzaorder/services/order/infrastructure/gateway/httpgateway"
)

type options struct {
	endpoint string
	timeout  time.Duration
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:           "ordercli",
		Short:         "Order a pizza from Bloom Pizza",
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "http://localhost:9009/api/order", "order endpoint URL")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "order request timeout")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	return cmd
}

func run(ctx context.Context, opts options, out io.Writer) error {
	log := logger.NewWithWriter(os.Stderr, opts.logLevel)
	ctrl := controller.New(httpgateway.New(opts.endpoint, opts.timeout))
	unsubscribe := ctrl.Subscribe(func(c controller.Change) {
		if c.Kind == controller.SubmitFailed {
			log.Warn("order submission failed", "error", c.Cause)
		}
	})
	defer unsubscribe()

	menu := models.DefaultMenu()
	if err := ask(ctrl, menu); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil
		}
		return err
	}

	if !ctrl.SubmitEnabled() {
		fmt.Fprintln(out, "The order is incomplete and was not submitted.")
		return nil
	}

	var confirmed bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Submit order for " + summary(menu, ctrl.State().Draft) + "?",
		Default: true,
	}, &confirmed); err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	result, err := ctrl.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result.Message)
	if result.Failed() {
		return errors.New("order was not accepted")
	}
	return nil
}

// ask prompts for every field and feeds each answer to ctrl. The name prompt
// re-asks until the controller reports no error for it.
func ask(ctrl *controller.Controller, menu *models.Menu) error {
	var fullName string
	err := survey.AskOne(&survey.Input{Message: "Full name"}, &fullName,
		survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			if err := ctrl.OnFieldChange(domainsvcs.FieldFullName, s, false, false); err != nil {
				return err
			}
			if msg := ctrl.State().Errors.FullName; msg != "" {
				return errors.New(msg)
			}
			return nil
		}))
	if err != nil {
		return err
	}

	sizeLabels := make([]string, len(menu.Sizes))
	for i, s := range menu.Sizes {
		sizeLabels[i] = s.Label
	}
	var sizeLabel string
	if err := survey.AskOne(&survey.Select{Message: "Size", Options: sizeLabels}, &sizeLabel); err != nil {
		return err
	}

	toppingLabels := make([]string, len(menu.Toppings))
	for i, t := range menu.Toppings {
		toppingLabels[i] = t.Label
	}
	var picked []string
	if err := survey.AskOne(&survey.MultiSelect{Message: "Toppings", Options: toppingLabels}, &picked); err != nil {
		return err
	}

	return apply(ctrl, menu, sizeLabel, picked)
}

// apply sets the size chosen by label and checks the picked toppings.
func apply(ctrl *controller.Controller, menu *models.Menu, sizeLabel string, toppingLabels []string) error {
	size := ""
	for _, s := range menu.Sizes {
		if s.Label == sizeLabel {
			size = s.Code.String()
		}
	}
	if err := ctrl.OnFieldChange(domainsvcs.FieldSize, size, false, false); err != nil {
		return err
	}

	byLabel := make(map[string]string, len(menu.Toppings))
	for _, t := range menu.Toppings {
		byLabel[t.Label] = t.ID
	}
	for _, label := range toppingLabels {
		id, ok := byLabel[label]
		if !ok {
			return fmt.Errorf("unknown topping %q", label)
		}
		if err := ctrl.OnFieldChange(domainsvcs.FieldToppings, id, true, true); err != nil {
			return err
		}
	}
	return nil
}

func summary(menu *models.Menu, d models.OrderDraft) string {
	s := fmt.Sprintf("%s, %s", d.FullName, menu.SizeLabel(models.Size(d.Size)))
	ids := d.Toppings.IDs()
	if len(ids) == 0 {
		return s + ", no toppings"
	}
	s += ", with"
	for i, id := range ids {
		t, _ := menu.Topping(id)
		if i > 0 {
			s += ","
		}
		s += " " + t.Label
	}
	return s
}
