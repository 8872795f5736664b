package domain

type CheckoutRequest struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Price       string `json:"price"`
	SuccessURL  string `json:"successUrl"`
	CancelURL   string `json:"cancelUrl"`
}

type CheckoutSession struct {
	URL string `json:"url"`
}

type TrialRequest struct {
	Email string `json:"email"`
}

type TrialActivation struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
