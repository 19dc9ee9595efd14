package queue

import (
	"encoding/json"

	"github.com/ezelectronics/ezelectronics/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskStockAlert 低库存提醒任务
	TaskStockAlert = constants.TaskTypeStockAlert
)

// StockAlertPayload 低库存提醒任务载荷
type StockAlertPayload struct {
	Model     string `json:"model"`
	Remaining int    `json:"remaining"`
	Threshold int    `json:"threshold"`
}

// NewStockAlertTask 创建低库存提醒任务
func NewStockAlertTask(payload StockAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStockAlert, body), nil
}
