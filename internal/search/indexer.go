package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/helpdesk/internal/models"
)

// TicketIndexer mirrors ticket writes into a search backend.
type TicketIndexer interface {
	IndexTicket(ctx context.Context, t models.Ticket) error
	DeleteTicket(ctx context.Context, id uint) error
}

type TicketDocument struct {
	ID              uint       `json:"id"`
	Number          string     `json:"numeroTicket"`
	Title           string     `json:"titulo"`
	Description     string     `json:"descricao"`
	Solution        string     `json:"solucao"`
	Notes           string     `json:"observacoes"`
	ServiceCenterID uint       `json:"caId"`
	CustomerID      uint       `json:"clienteId"`
	UserID          uint       `json:"usuarioId"`
	ModuleID        uint       `json:"moduloId"`
	SubjectID       uint       `json:"assuntoId"`
	TypeID          uint       `json:"tipoAtendimentoId"`
	StatusID        uint       `json:"statusId"`
	StartedAt       time.Time  `json:"dataInicio"`
	EndedAt         *time.Time `json:"dataFim,omitempty"`
}

func NewTicketDocument(t models.Ticket) TicketDocument {
	return TicketDocument{
		ID:              t.ID,
		Number:          t.Number,
		Title:           t.Title,
		Description:     t.Description,
		Solution:        t.Solution,
		Notes:           t.Notes,
		ServiceCenterID: t.ServiceCenterID,
		CustomerID:      t.CustomerID,
		UserID:          t.UserID,
		ModuleID:        t.ModuleID,
		SubjectID:       t.SubjectID,
		TypeID:          t.TypeID,
		StatusID:        t.StatusID,
		StartedAt:       t.StartedAt,
		EndedAt:         t.EndedAt,
	}
}

type ElasticIndexer struct {
	Client *elasticsearch.Client
	Index  string
}

type ClientConfig struct {
	URL      string
	User     string
	Password string
}

func NewClient(ctx context.Context, cfg ClientConfig) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: new client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch: info: %s: %s", res.Status(), body)
	}
	return client, nil
}

func (x *ElasticIndexer) IndexTicket(ctx context.Context, t models.Ticket) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(NewTicketDocument(t)); err != nil {
		return fmt.Errorf("elasticsearch: encode ticket: %w", err)
	}

	res, err := x.Client.Index(
		x.Index,
		&buf,
		x.Client.Index.WithContext(ctx),
		x.Client.Index.WithDocumentID(strconv.FormatUint(uint64(t.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: index ticket: %w", err)
	}
	return checkResponse(res, "index ticket")
}

func (x *ElasticIndexer) DeleteTicket(ctx context.Context, id uint) error {
	res, err := x.Client.Delete(
		x.Index,
		strconv.FormatUint(uint64(id), 10),
		x.Client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: delete ticket: %w", err)
	}
	if res.StatusCode == http.StatusNotFound {
		res.Body.Close()
		return nil
	}
	return checkResponse(res, "delete ticket")
}

func checkResponse(res *esapi.Response, op string) error {
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("elasticsearch: %s: %s: %s", op, res.Status(), body)
	}
	return nil
}

type Nop struct{}

func (Nop) IndexTicket(context.Context, models.Ticket) error { return nil }
func (Nop) DeleteTicket(context.Context, uint) error         { return nil }
