package webhooks

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/domain"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
	"github.com/jhoicas/shop-admin-api/internal/domain/repository"
)

// UseCase recepción de webhooks de Shopify: upsert del payload crudo en el
// espejo correspondiente, llaveado por el id del recurso. Sin más lógica de
// negocio; los espejos no sirven lecturas del dashboard.
type UseCase struct {
	repo repository.MirrorRepository
}

// NewUseCase construye el caso de uso con el puerto de persistencia.
func NewUseCase(repo repository.MirrorRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Receive procesa un evento {orders|customers|products}/create ya verificado
// por HMAC. Devuelve ErrInvalidInput si el payload no trae un id numérico.
func (uc *UseCase) Receive(kind string, payload []byte) (*dto.MessageResponse, error) {
	switch kind {
	case entity.MirrorOrders, entity.MirrorCustomers, entity.MirrorProducts:
	default:
		return nil, domain.ErrInvalidInput
	}
	var envelope struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil || envelope.ID == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	record := &entity.MirrorRecord{
		Kind:       kind,
		ExternalID: envelope.ID,
		Payload:    payload,
		ReceivedAt: now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Upsert(record); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "webhook procesado"}, nil
}
