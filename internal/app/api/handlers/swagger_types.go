package handlers

import (
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/billing"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/finance"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/statistics"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespDashboard wraps the dashboard payload in the standard envelope.
type RespDashboard struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    finance.Dashboard        `json:"data"`
}

// RespBillingStatus wraps the subscription status in the standard envelope.
type RespBillingStatus struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    billing.Status           `json:"data"`
}

// RespBusinessMetrics wraps the admin metrics in the standard envelope.
type RespBusinessMetrics struct {
	Code    response.APIResponseCode           `json:"code"`
	Message string                             `json:"message"`
	Data    statistics.BusinessMetricsResponse `json:"data"`
}
