package error_notificator

import "context"

type Service struct {
	infra Notificator
}

func NewService(infra Notificator) *Service {
	if infra == nil {
		infra = LogInfra{}
	}
	return &Service{infra: infra}
}

func (s *Service) Notify(ctx context.Context, err error, details string) error {
	if err == nil {
		return nil
	}
	return s.infra.Notify(ctx, err, details)
}
