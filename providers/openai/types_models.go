package openai

// dataList is the {"object":"list","data":[...]} envelope of list endpoints.
type dataList[T any] struct {
	Object string `json:"object"`
	Data   []T    `json:"data"`
}

// ModelPermission describes what an organization may do with a model.
type ModelPermission struct {
	ID                 string  `json:"id"`
	Object             string  `json:"object"`
	Created            int64   `json:"created"`
	AllowCreateEngine  bool    `json:"allow_create_engine"`
	AllowSampling      bool    `json:"allow_sampling"`
	AllowLogprobs      bool    `json:"allow_logprobs"`
	AllowSearchIndices bool    `json:"allow_search_indices"`
	AllowView          bool    `json:"allow_view"`
	AllowFineTuning    bool    `json:"allow_fine_tuning"`
	Organization       string  `json:"organization"`
	Group              *string `json:"group"`
	IsBlocking         bool    `json:"is_blocking"`
}

// Model is one model available to the account.
type Model struct {
	ID         string            `json:"id"`
	Object     string            `json:"object"`
	Created    int64             `json:"created"`
	OwnedBy    string            `json:"owned_by"`
	Permission []ModelPermission `json:"permission,omitempty"`
	Root       string            `json:"root,omitempty"`
	Parent     *string           `json:"parent,omitempty"`
}

// DeleteModelResponse is returned when a fine-tuned model is deleted.
type DeleteModelResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}
