package models

// HIBPBreach — одна брешь из ответа unifiedsearch.
// Json-теги повторяют PascalCase ключи провайдера.
type HIBPBreach struct {
	Title       string   `json:"Title"`
	Domain      string   `json:"Domain"`
	BreachDate  string   `json:"BreachDate"`
	PwnCount    int64    `json:"PwnCount"`
	Description string   `json:"Description"`
	DataClasses []string `json:"DataClasses"`
}

// HIBPProfile — все бреши, найденные для одного email.
type HIBPProfile struct {
	Email    string       `json:"email"`
	Breaches []HIBPBreach `json:"breaches"`
}
