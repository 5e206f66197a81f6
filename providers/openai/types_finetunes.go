package openai

import (
	"encoding/json"

	"github.com/petal-labs/chatstream/core"
)

// FineTuneStatus is the lifecycle state of a fine-tune job.
type FineTuneStatus string

const (
	FineTuneStatusPending   FineTuneStatus = "pending"
	FineTuneStatusRunning   FineTuneStatus = "running"
	FineTuneStatusSucceeded FineTuneStatus = "succeeded"
	FineTuneStatusFailed    FineTuneStatus = "failed"
	FineTuneStatusCancelled FineTuneStatus = "cancelled"
)

// Terminal reports whether the job can no longer change state.
func (s FineTuneStatus) Terminal() bool {
	return s == FineTuneStatusSucceeded || s == FineTuneStatusFailed || s == FineTuneStatusCancelled
}

// UnmarshalJSON accepts only the known statuses.
func (s *FineTuneStatus) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch FineTuneStatus(v) {
	case FineTuneStatusPending, FineTuneStatusRunning, FineTuneStatusSucceeded,
		FineTuneStatusFailed, FineTuneStatusCancelled:
		*s = FineTuneStatus(v)
		return nil
	}
	return &core.InvalidEnumError{Type: "fine_tune_status", Value: v}
}

// CreateFineTuneRequest is the body of POST /v1/fine-tunes.
type CreateFineTuneRequest struct {
	TrainingFile                 string    `json:"training_file"`
	ValidationFile               string    `json:"validation_file,omitempty"`
	Model                        string    `json:"model,omitempty"`
	NEpochs                      *int      `json:"n_epochs,omitempty"`
	BatchSize                    *int      `json:"batch_size,omitempty"`
	LearningRateMultiplier       *float64  `json:"learning_rate_multiplier,omitempty"`
	PromptLossWeight             *float64  `json:"prompt_loss_weight,omitempty"`
	ComputeClassificationMetrics *bool     `json:"compute_classification_metrics,omitempty"`
	ClassificationNClasses       *int      `json:"classification_n_classes,omitempty"`
	ClassificationPositiveClass  string    `json:"classification_positive_class,omitempty"`
	ClassificationBetas          []float64 `json:"classification_betas,omitempty"`
	Suffix                       string    `json:"suffix,omitempty"`
}

// FineTuneEvent is one log line of a fine-tune job.
type FineTuneEvent struct {
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

// FineTuneHyperparams are the training parameters a job ran with.
type FineTuneHyperparams struct {
	BatchSize              int     `json:"batch_size"`
	LearningRateMultiplier float64 `json:"learning_rate_multiplier"`
	PromptLossWeight       float64 `json:"prompt_loss_weight"`
	NEpochs                int     `json:"n_epochs"`
}

// FineTune is a fine-tune job.
type FineTune struct {
	ID              string              `json:"id"`
	Object          string              `json:"object"`
	Model           string              `json:"model"`
	CreatedAt       int64               `json:"created_at"`
	Events          []FineTuneEvent     `json:"events"`
	FineTunedModel  *string             `json:"fine_tuned_model"`
	Hyperparams     FineTuneHyperparams `json:"hyperparams"`
	OrganizationID  string              `json:"organization_id"`
	ResultFiles     []File              `json:"result_files"`
	Status          FineTuneStatus      `json:"status"`
	ValidationFiles []File              `json:"validation_files"`
	TrainingFiles   []File              `json:"training_files"`
	UpdatedAt       int64               `json:"updated_at"`
}
