package request

type PageRequest struct {
	PageName string `param:"pageName" validate:"required,max=100"`
}
