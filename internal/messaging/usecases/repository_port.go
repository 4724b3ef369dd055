package usecases

//go:generate mockgen -source=repository_port.go -destination=../../../test/unit/doubles/messaging/usecases/repository_port_mock.go -package=usecases -mock_names=TemplateRepository=MockTemplateRepository

import (
	"context"
	"errors"

	messagingdomain "foodops-server/internal/messaging/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

var ErrTemplateNotFound = errors.New("email template not found")

type Pagination struct {
	Limit  int
	Offset int
}

type TemplateRepository interface {
	Create(ctx context.Context, template messagingdomain.EmailTemplate) error
	GetByID(ctx context.Context, id shareddomain.ID) (messagingdomain.EmailTemplate, error)
	GetByName(ctx context.Context, name string) (messagingdomain.EmailTemplate, error)
	FindAll(ctx context.Context, pagination Pagination) ([]messagingdomain.EmailTemplate, int, error)
	Update(ctx context.Context, template messagingdomain.EmailTemplate) error
	Delete(ctx context.Context, id shareddomain.ID) error
}
