package gateway

import (
	"sort"

	"github.com/karimfayez/souq-promo-service/internal/domain"
)

// Registry resolves a payment-method key to its gateway. The order pipeline
// never branches on the method itself.
type Registry struct {
	gateways map[string]domain.PaymentGateway
}

func NewRegistry(gateways ...domain.PaymentGateway) *Registry {
	r := &Registry{gateways: make(map[string]domain.PaymentGateway, len(gateways))}
	for _, gw := range gateways {
		r.gateways[gw.Method()] = gw
	}
	return r
}

func (r *Registry) Resolve(method string) (domain.PaymentGateway, error) {
	gw, ok := r.gateways[method]
	if !ok {
		return nil, domain.ErrUnknownMethod
	}
	return gw, nil
}

func (r *Registry) Methods() []string {
	methods := make([]string, 0, len(r.gateways))
	for m := range r.gateways {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}
