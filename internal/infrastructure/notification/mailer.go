// Package notification implementa el envío de correos de resumen de órdenes
// de compra vía SMTP. El envío es asíncrono: encolar nunca bloquea el
// request que creó las órdenes y un fallo de SMTP nunca lo revierte.
package notification

import (
	"fmt"
	"strings"
	"sync"

	gomail "gopkg.in/gomail.v2"

	"github.com/jhoicas/mistock-api/internal/application/restock"
	"github.com/jhoicas/mistock-api/internal/domain/entity"
	"github.com/jhoicas/mistock-api/pkg/config"
	"github.com/jhoicas/mistock-api/pkg/logger"
)

var _ restock.Notifier = (*Mailer)(nil)

type summaryJob struct {
	recipient   string
	displayName string
	orders      []*entity.PurchaseOrder
}

// Mailer worker de correos con una goroutine y cola acotada. Con la cola
// llena el trabajo se descarta con un warn: perder un correo de resumen es
// preferible a bloquear la creación de órdenes.
type Mailer struct {
	cfg  config.SMTPConfig
	log  *logger.Logger
	jobs chan summaryJob

	closeOnce sync.Once
	done      chan struct{}
}

// NewMailer construye el mailer. Llamar Start para arrancar el worker.
func NewMailer(cfg config.SMTPConfig, log *logger.Logger) *Mailer {
	return &Mailer{
		cfg:  cfg,
		log:  log,
		jobs: make(chan summaryJob, 64),
		done: make(chan struct{}),
	}
}

// Start arranca la goroutine de envío.
func (m *Mailer) Start() {
	go m.run()
}

// Close cierra la cola y espera a que el worker drene lo pendiente.
func (m *Mailer) Close() {
	m.closeOnce.Do(func() { close(m.jobs) })
	<-m.done
}

// EnqueueOrderSummary encola un resumen de órdenes para recipient. No
// bloquea: si la cola está llena o el SMTP no está configurado, descarta.
func (m *Mailer) EnqueueOrderSummary(recipient, displayName string, orders []*entity.PurchaseOrder) {
	if m.cfg.Host == "" || recipient == "" || len(orders) == 0 {
		return
	}
	select {
	case m.jobs <- summaryJob{recipient: recipient, displayName: displayName, orders: orders}:
	default:
		m.log.Warn().Str("recipient", recipient).Int("orders", len(orders)).
			Msg("cola de correos llena, resumen descartado")
	}
}

func (m *Mailer) run() {
	defer close(m.done)
	for job := range m.jobs {
		if err := m.send(job); err != nil {
			m.log.Error().Err(err).Str("recipient", job.recipient).
				Msg("error enviando resumen de órdenes")
			continue
		}
		m.log.Info().Str("recipient", job.recipient).Int("orders", len(job.orders)).
			Msg("resumen de órdenes enviado")
	}
}

func (m *Mailer) send(job summaryJob) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", job.recipient)
	msg.SetHeader("Subject", fmt.Sprintf("Resumen de órdenes de compra (%d)", len(job.orders)))
	msg.SetBody("text/plain", buildSummaryBody(job.displayName, job.orders))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	return dialer.DialAndSend(msg)
}

// buildSummaryBody arma el cuerpo del correo: una línea por orden del lote.
func buildSummaryBody(displayName string, orders []*entity.PurchaseOrder) string {
	var b strings.Builder
	name := displayName
	if name == "" {
		name = "Hola"
	}
	fmt.Fprintf(&b, "%s,\n\nSe registraron %d orden(es) de compra:\n\n", name, len(orders))
	for _, o := range orders {
		fmt.Fprintf(&b, "- Producto %s: %d unidad(es), estado %s", o.ProductID, o.QuantityOrdered, o.Status)
		if o.Notes != "" {
			fmt.Fprintf(&b, " (%s)", o.Notes)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nEste correo es informativo, no requiere respuesta.\n")
	return b.String()
}
