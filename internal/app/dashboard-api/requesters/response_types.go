package requesters

import "encoding/json"

type tonCenterBalanceResponse struct {
	Ok     bool        `json:"ok"`
	Result json.Number `json:"result"`
	Error  string      `json:"error"`
}

type tonApiAccountResponse struct {
	Address string      `json:"address"`
	Balance json.Number `json:"balance"`
	Status  string      `json:"status"`
}

type tonCenterV3AccountResponse struct {
	Balance json.Number `json:"balance"`
	Status  string      `json:"status"`
}
