package models

// CheckoutRequest starts a payment session upstream. AmountCents is
// client-suggested, not authoritative; the external API owns pricing policy.
type CheckoutRequest struct {
	SessionID      int64   `json:"session_id"`
	StudentID      int64   `json:"student_id"`
	AmountCents    int64   `json:"amount_cents"`
	SuccessURL     string  `json:"success_url"`
	CancelURL      string  `json:"cancel_url"`
	TypingUsername *string `json:"typing_username,omitempty"`
}

// CheckoutResult carries the hosted payment page the browser is sent to.
type CheckoutResult struct {
	CheckoutURL string `json:"checkout_url"`
}

// AdminToken is the admin login response. The token is relayed on subsequent
// admin calls via the X-Admin-Token header until sign-out.
type AdminToken struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
