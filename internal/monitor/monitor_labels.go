package monitor

type HttpRequestLabels struct {
	Status string
	Route  string
	Method string
}

type WalletAPILabels struct {
	Method     string
	Endpoint   string
	Status     string
	StatusCode string
}

func (w WalletAPILabels) ToMap() map[string]string {
	return map[string]string{
		"method":      w.Method,
		"endpoint":    w.Endpoint,
		"status":      w.Status,
		"status_code": w.StatusCode,
	}
}

var WalletAPILabelNames = []string{"method", "endpoint", "status", "status_code"}

type CacheLookupLabels struct {
	Result   string
	Currency string
}

func (c CacheLookupLabels) ToMap() map[string]string {
	return map[string]string{
		"result":   c.Result,
		"currency": c.Currency,
	}
}
