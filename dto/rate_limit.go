package dto

import "time"

type RateLimitRuleInfo struct {
	Route         string `json:"route"`
	MaxRequests   int    `json:"max_requests"`
	WindowSeconds int    `json:"window_seconds"`
}

type RateLimitStatsResponse struct {
	Rules     []RateLimitRuleInfo `json:"rules"`
	Timestamp time.Time           `json:"timestamp"`
}

type RateLimitResetParams struct {
	Route    string `params:"route" validate:"required,min=1,max=80"`
	Identity string `params:"identity" validate:"required,min=1,max=120"`
}

func (p RateLimitResetParams) Validate() error {
	return GetValidator().Struct(p)
}
