package services

import (
	"github.com/ghuser/pizzaorder/pkg/app"
	"github.com/ghuser/pizzaorder/pkg/cache"
	"github.com/ghuser/pizzaorder/services/order/domain/models"
	"github.com/ghuser/pizzaorder/services/order/infrastructure/gateway/httpgateway"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Forms *FormService
	Menu  *models.Menu
}

// New wires all order application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	gw := httpgateway.New(a.Config.OrderEndpoint, a.Config.GatewayTimeout)

	opts := []FormServiceOption{
		WithMetrics(a.Metrics),
		WithIdleTTL(a.Config.DraftTTL),
	}
	if a.EventBus != nil {
		opts = append(opts, WithEventPublisher(a.EventBus))
	}
	if a.Redis != nil {
		opts = append(opts, WithDraftStore(cache.NewDraftCache(a.Redis, a.Config.DraftTTL)))
	}

	return &Services{
		Forms: NewFormService(gw, a.Logger, opts...),
		Menu:  models.DefaultMenu(),
	}
}
