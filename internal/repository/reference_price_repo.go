package repository

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"golang-backtest/config"
	"golang-backtest/internal/dto"
	"golang-backtest/pkg/httpclient"
	"golang-backtest/pkg/logger"

	"golang.org/x/time/rate"
)

// ReferencePriceRepository fetches a reference price dataset from a
// remote source. The core only needs the resulting columns; everything
// about the transport stays behind this interface.
type ReferencePriceRepository interface {
	GetDataset(ctx context.Context) (*dto.ReferenceDataset, error)
}

type referencePriceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	mu             sync.Mutex
}

func NewReferencePriceRepository(cfg *config.Config, log *logger.Logger) ReferencePriceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Reference.MaxRequestPerMin)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &referencePriceRepository{
		httpClient:     httpclient.New(cfg.Reference.BaseURL, cfg.Reference.BaseTimeout, ""),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *referencePriceRepository) GetDataset(ctx context.Context) (*dto.ReferenceDataset, error) {
	r.mu.Lock()
	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	var dataset dto.ReferenceDataset
	resp, err := r.httpClient.Get(ctx, "/dataset", nil, nil, &dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reference dataset: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Reference source returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("reference source returned status: %d", resp.StatusCode)
	}

	if len(dataset.Instruments) == 0 {
		return nil, fmt.Errorf("reference dataset is empty")
	}

	return &dataset, nil
}

// SelectColumns picks one dataset column per requested instrument by
// nearest match (minimum absolute difference) on initial price plus
// volatility. Columns longer than days are truncated; shorter ones are
// rejected.
func SelectColumns(dataset *dto.ReferenceDataset, days int, initialPrices, volatilities []float64) ([][]float64, error) {
	columns := make([][]float64, len(initialPrices))

	for i := range initialPrices {
		best := -1
		bestScore := math.Inf(1)
		for j, inst := range dataset.Instruments {
			if len(inst.Prices) < days {
				continue
			}
			score := math.Abs(inst.InitialPrice - initialPrices[i])
			if i < len(volatilities) {
				score += math.Abs(inst.Volatility - volatilities[i])
			}
			if score < bestScore {
				bestScore = score
				best = j
			}
		}
		if best < 0 {
			return nil, fmt.Errorf("no reference column with at least %d days", days)
		}
		columns[i] = dataset.Instruments[best].Prices[:days]
	}

	return columns, nil
}
