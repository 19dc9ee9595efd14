package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ezelectronics/ezelectronics/internal/logger"
	"github.com/ezelectronics/ezelectronics/internal/models"
	"github.com/ezelectronics/ezelectronics/internal/provider"
	"github.com/ezelectronics/ezelectronics/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskStockAlert, c.handleStockAlert)
}

func (c *Consumer) handleStockAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_stock_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.StockAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_stock_alert_unmarshal_failed", "error", err)
		return err
	}
	model := strings.TrimSpace(payload.Model)
	if model == "" {
		logger.Debugw("worker_stock_alert_skip_invalid_payload", "model", payload.Model)
		return nil
	}

	alert := &models.StockAlert{
		Model:     model,
		Remaining: payload.Remaining,
		Threshold: payload.Threshold,
	}
	if err := c.StockAlertRepo.Create(alert); err != nil {
		logger.Warnw("worker_stock_alert_persist_failed", "model", model, "error", err)
		return err
	}

	logger.Infow("worker_stock_alert_recorded",
		"model", model,
		"remaining", payload.Remaining,
		"threshold", payload.Threshold,
	)
	return nil
}
