package email

type EmailRequest struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}
