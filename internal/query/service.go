// Package query exposes filtered reads over the alert store in the external
// wire vocabulary. The Portuguese field and token names exist only here and
// at the HTTP boundary; everything below speaks the canonical internal names.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/preemiealert/go-preemie-alerts/internal/classify"
	"github.com/preemiealert/go-preemie-alerts/internal/models"
	"github.com/preemiealert/go-preemie-alerts/internal/repository"
)

// Params carries the raw external query tokens. Empty strings mean the
// filter is absent.
type Params struct {
	Periodo   string
	Urgencia  string
	Municipio string
	Limit     int
}

// Alert is the external representation of a stored AlertRecord.
type Alert struct {
	ID             int64     `json:"id"`
	Municipio      string    `json:"municipio"`
	Semanas        int       `json:"semanas"`
	Urgencia       string    `json:"urgencia"`
	Timestamp      time.Time `json:"timestamp"`
	Hospital       string    `json:"hospital"`
	DataNascimento string    `json:"data_nascimento"`
}

// AppliedFilters echoes the request filters verbatim, nil for absent ones.
type AppliedFilters struct {
	Periodo   *string `json:"periodo"`
	Urgencia  *string `json:"urgencia"`
	Municipio *string `json:"municipio"`
}

type AlertsResponse struct {
	Alertas          []Alert        `json:"alertas"`
	Total            int            `json:"total"`
	FiltrosAplicados AppliedFilters `json:"filtros_aplicados"`
	Timestamp        time.Time      `json:"timestamp"`
}

type TierStatistics struct {
	Total          int    `json:"total"`
	CustoEstimado  int    `json:"custo_estimado"`
	DiasInternacao int    `json:"dias_internacao"`
	Categoria      string `json:"categoria"`
}

type StatisticsResponse struct {
	PorUrgencia map[string]TierStatistics `json:"por_urgencia"`
	Total       int                       `json:"total"`
	Timestamp   time.Time                 `json:"timestamp"`
}

var tierByToken = map[string]models.UrgencyTier{
	"EXTREMA": models.UrgencyTierExtreme,
	"ALTA":    models.UrgencyTierHigh,
	"MÉDIA":   models.UrgencyTierMedium,
	"BAIXA":   models.UrgencyTierLow,
}

var tokenByTier = map[models.UrgencyTier]string{
	models.UrgencyTierExtreme: "EXTREMA",
	models.UrgencyTierHigh:    "ALTA",
	models.UrgencyTierMedium:  "MÉDIA",
	models.UrgencyTierLow:     "BAIXA",
}

// ParseUrgencia maps an external urgency token to the internal tier.
func ParseUrgencia(token string) (models.UrgencyTier, error) {
	if tier, ok := tierByToken[token]; ok {
		return tier, nil
	}
	return "", fmt.Errorf("%w: unknown urgency %q", repository.ErrInvalidFilter, token)
}

// UrgenciaToken maps an internal tier to its external token.
func UrgenciaToken(tier models.UrgencyTier) string {
	return tokenByTier[tier]
}

type Service struct {
	repo repository.AlertRepository
}

func NewService(repo repository.AlertRepository) *Service {
	return &Service{repo: repo}
}

// Alerts runs a filtered, limited listing. Total counts the returned
// records only; pagination beyond the single limit window is not offered.
func (s *Service) Alerts(ctx context.Context, p Params) (*AlertsResponse, error) {
	filter := repository.Filter{Limit: p.Limit}

	if p.Periodo != "" {
		w, err := repository.ParseWindow(p.Periodo)
		if err != nil {
			return nil, err
		}
		filter.Window = &w
	}
	if p.Urgencia != "" {
		tier, err := ParseUrgencia(p.Urgencia)
		if err != nil {
			return nil, err
		}
		filter.Tier = &tier
	}
	if p.Municipio != "" {
		filter.Municipality = &p.Municipio
	}

	records, err := s.repo.ListFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	alerts := make([]Alert, 0, len(records))
	for _, r := range records {
		alerts = append(alerts, ToAlert(r))
	}

	return &AlertsResponse{
		Alertas:          alerts,
		Total:            len(alerts),
		FiltrosAplicados: appliedFilters(p),
		Timestamp:        time.Now().UTC(),
	}, nil
}

// Statistics aggregates per-tier counts and joins the static cost table.
func (s *Service) Statistics(ctx context.Context) (*StatisticsResponse, error) {
	counts, err := s.repo.CountByTier(ctx)
	if err != nil {
		return nil, err
	}

	perTier := make(map[string]TierStatistics, len(tokenByTier))
	total := 0
	for tier, token := range tokenByTier {
		n := counts[tier]
		profile := classify.Profile(tier)
		perTier[token] = TierStatistics{
			Total:          n,
			CustoEstimado:  n * profile.AverageCost,
			DiasInternacao: profile.EstimatedStayDays,
			Categoria:      profile.Category,
		}
		total += n
	}

	return &StatisticsResponse{
		PorUrgencia: perTier,
		Total:       total,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// ToAlert translates a stored record into the external representation.
func ToAlert(r models.AlertRecord) Alert {
	return Alert{
		ID:             r.ID,
		Municipio:      r.Municipality,
		Semanas:        r.GestationalWeeks,
		Urgencia:       UrgenciaToken(r.UrgencyTier),
		Timestamp:      r.OccurredAt,
		Hospital:       r.Hospital,
		DataNascimento: r.BirthDate,
	}
}

func appliedFilters(p Params) AppliedFilters {
	f := AppliedFilters{}
	if p.Periodo != "" {
		f.Periodo = &p.Periodo
	}
	if p.Urgencia != "" {
		f.Urgencia = &p.Urgencia
	}
	if p.Municipio != "" {
		f.Municipio = &p.Municipio
	}
	return f
}
