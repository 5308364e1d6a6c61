// Package push implementa los transportes de notificaciones push hacia los dispositivos.
package push

import (
	"context"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/notify"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

var _ notify.Pusher = (*LogPusher)(nil)

// LogPusher solo registra el mensaje (desarrollo y entornos sin proveedor push).
type LogPusher struct {
	log *logger.Logger
}

// NewLogPusher construye el transporte.
func NewLogPusher(log *logger.Logger) *LogPusher {
	return &LogPusher{log: log.WithComponent("push")}
}

// Push registra un evento por dispositivo.
func (p *LogPusher) Push(_ context.Context, devices []*entity.UserDevice, msg notify.PushMessage) error {
	for _, d := range devices {
		p.log.Info().
			Str("user_id", d.UserID).
			Str("device_type", d.Type).
			Str("title", msg.Title).
			Str("body", msg.Body).
			Interface("data", msg.Data).
			Msg("push simulado")
	}
	return nil
}
