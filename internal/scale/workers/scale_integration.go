package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"foodops-server/internal/infra/async"
	"foodops-server/internal/infra/mqtt"
	"foodops-server/internal/infra/utils"
	"foodops-server/internal/scale/dto"
	shareddomain "foodops-server/internal/shared_kernel/domain"
	statsdomain "foodops-server/internal/stats/domain"
	statsusecases "foodops-server/internal/stats/usecases"
)

const (
	_topicBase          = "foodops/scale"
	_categoriesPageSize = 100
)

const _qos byte = 0

// NewScaleIntegrationWorker builds the worker that turns MQTT scale
// readings into recorded donations. Each active weighing category gets its
// own topic under foodops/scale/; the ticker drives reconciliation so
// categories created after startup are picked up too.
func NewScaleIntegrationWorker(
	ticker *time.Ticker,
	categoryService statsusecases.CategoryService,
	donationService statsusecases.DonationService,
	mqttClient mqtt.Client,
) *ScaleIntegrationWorker {
	return &ScaleIntegrationWorker{
		ticker:          ticker,
		categoryService: categoryService,
		donationService: donationService,
		mqttClient:      mqttClient,
	}
}

var _ async.Worker = &ScaleIntegrationWorker{}

type ScaleIntegrationWorker struct {
	ticker          *time.Ticker
	categoryService statsusecases.CategoryService
	donationService statsusecases.DonationService
	mqttClient      mqtt.Client
	categories      sync.Map
}

func (w *ScaleIntegrationWorker) Run(ctx context.Context, done func()) {
	slog.Info("scale integration worker started")
	defer done()
	var wg sync.WaitGroup

	wg.Add(1)
	w.reconciliation(ctx, wg.Done)

	for {
		select {
		case <-ctx.Done():
			slog.Warn("scale integration worker cancelled")
			wg.Wait()
			return
		case <-w.ticker.C:
			wg.Add(1)
			go w.reconciliation(context.Background(), wg.Done)
		}
	}
}

func (w *ScaleIntegrationWorker) reconciliation(ctx context.Context, done func()) {
	slog.Debug("scale reconciliation start", slog.Time("time", time.Now()))
	defer done()

	pagination := statsusecases.Pagination{Limit: _categoriesPageSize}
	for {
		categories, total, err := w.categoryService.ListCategories(ctx, pagination)
		if err != nil {
			slog.Error("listing weighing categories", slog.String("error", err.Error()))
			return
		}

		for _, category := range categories {
			w.handleCategory(ctx, category)
		}

		pagination.Offset += len(categories)
		if pagination.Offset >= total || len(categories) == 0 {
			break
		}
	}
	slog.Debug("scale reconciliation end", slog.Time("time", time.Now()))
}

func (w *ScaleIntegrationWorker) handleCategory(ctx context.Context, category statsdomain.WeighingCategory) {
	if !category.IsActive {
		return
	}

	segment := topicSegment(category.Name.String())
	if _, exists := w.categories.Load(segment); exists {
		return
	}
	w.categories.Store(segment, category.ID)

	topic := fmt.Sprintf("%s/%s", _topicBase, segment)
	err := w.mqttClient.Subscribe(topic, _qos, w.messageHandler(ctx))
	if err != nil {
		slog.Error("subscribing to scale topic",
			slog.String("topic", topic),
			slog.String("error", err.Error()))
		w.categories.Delete(segment)
		return
	}
	slog.Info("scale topic configured",
		slog.String("topic", topic),
		slog.String("category", category.Name.String()))
}

// topicSegment maps a category name to its MQTT topic segment. Scales are
// provisioned with the same mapping.
func topicSegment(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

var topicRegex = regexp.MustCompile(`^foodops/scale/(.+)$`)

func (w *ScaleIntegrationWorker) messageHandler(ctx context.Context) mqtt.MessageHandler {
	return func(client mqtt.Client, msg mqtt.Message) {
		slog.Info("scale reading received",
			slog.String("topic", msg.Topic()),
			slog.Uint64("message_id", uint64(msg.MessageID())),
		)

		result := topicRegex.FindStringSubmatch(msg.Topic())
		if len(result) < 2 {
			slog.Error("invalid scale topic", slog.String("topic", msg.Topic()))
			return
		}

		categoryID, ok := w.categories.Load(result[1])
		if !ok {
			slog.Error("reading for unconfigured category", slog.String("topic", msg.Topic()))
			return
		}

		var reading dto.ScaleReading
		if err := json.Unmarshal(msg.Payload(), &reading); err != nil {
			slog.Error("decoding scale reading",
				slog.String("topic", msg.Topic()),
				slog.String("error", err.Error()))
			return
		}

		w.recordReading(ctx, categoryID.(shareddomain.ID), reading)
	}
}

func (w *ScaleIntegrationWorker) recordReading(ctx context.Context, categoryID shareddomain.ID, reading dto.ScaleReading) {
	if reading.Units < 0 {
		slog.Error("negative scale reading",
			slog.String("scale_id", reading.ScaleID),
			slog.Float64("units", reading.Units))
		return
	}

	date := utils.Date{Time: time.Now()}
	if reading.Date != "" {
		parsed, err := utils.ParseDate(reading.Date)
		if err != nil {
			slog.Error("parsing reading date",
				slog.String("date", reading.Date),
				slog.String("error", err.Error()))
			return
		}
		date = parsed
	}

	donor := reading.Donor
	if donor == "" {
		donor = "Unattended scale"
	}

	var notes string
	if reading.ScaleID != "" {
		notes = fmt.Sprintf("recorded by scale %s", reading.ScaleID)
	}

	donation, err := w.donationService.RecordDonation(ctx, statsusecases.DonationInput{
		CategoryID:  categoryID,
		Donor:       donor,
		WeightValue: reading.Units,
		Date:        date,
		Notes:       notes,
	})
	if err != nil {
		slog.Error("recording scale donation",
			slog.String("category_id", categoryID.String()),
			slog.String("error", err.Error()))
		return
	}

	slog.Debug("scale donation recorded",
		slog.String("donation_id", donation.ID.String()),
		slog.Float64("weight_kg", donation.WeightKg))
}

func (w *ScaleIntegrationWorker) Shutdown() {
	slog.Warn("scale integration worker shutdown is not yet implemented")
}
