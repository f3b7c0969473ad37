package command

type CreateTaskCommand struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}
