package transfer

type AccountTypeUpdate struct {
	AccountType string `json:"account_type" validate:"required,oneof=free premium"`
}

type ConnectResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}
