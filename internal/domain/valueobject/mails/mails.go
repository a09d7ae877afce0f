package mails

// Payload is what a mail sender needs to deliver one message.
type Payload struct {
	To      string
	Subject string
	Body    string
}
