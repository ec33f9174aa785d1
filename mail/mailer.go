package mail

import (
	"fmt"
	"log"
	"sync"

	"github.com/ardiansyah/finku-backend/models"
	"gopkg.in/gomail.v2"
)

// Sender отправляет одно письмо; за доставку отвечает транспорт
type Sender interface {
	Send(to, subject, body string) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

func (s *smtpSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func NewSMTPSender(host string, port int, username, password string) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
	}
}

// disabledSender используется, когда SMTP не настроен: письма не уходят
type disabledSender struct{}

func (disabledSender) Send(to, subject, body string) error {
	log.Printf("mail disabled, dropping message to %s: %s", to, subject)
	return nil
}

func NewDisabledSender() Sender {
	return disabledSender{}
}

type message struct {
	to      string
	subject string
	body    string
}

// Mailer ставит письма в очередь и отправляет их в фоне.
// Ошибки отправки только логируются, повторов нет.
type Mailer struct {
	sender Sender
	queue  chan message
	wg     sync.WaitGroup
}

func NewMailer(sender Sender) *Mailer {
	m := &Mailer{
		sender: sender,
		queue:  make(chan message, 64),
	}
	m.wg.Add(1)
	go m.run()
	return m
}

func (m *Mailer) run() {
	defer m.wg.Done()
	for msg := range m.queue {
		if err := m.sender.Send(msg.to, msg.subject, msg.body); err != nil {
			log.Printf("failed to send email to %s: %v", msg.to, err)
		}
	}
}

func (m *Mailer) enqueue(msg message) {
	select {
	case m.queue <- msg:
	default:
		log.Printf("mail queue full, dropping message to %s", msg.to)
	}
}

// Close дожидается отправки писем, оставшихся в очереди
func (m *Mailer) Close() {
	close(m.queue)
	m.wg.Wait()
}

func (m *Mailer) SendWelcome(email, username string) {
	body := fmt.Sprintf(`
		<h1>Selamat Datang, %s!</h1>
		<p>Terima kasih telah bergabung dengan Aplikasi Keuangan kami.</p>
		<p>Dengan aplikasi ini, Anda dapat melacak pemasukan dan pengeluaran Anda dengan mudah.</p>
		<p>Selamat mencoba!</p>
		<p>Salam,</p>
		<p>Tim ur.personalfinance</p>`, username)
	m.enqueue(message{
		to:      email,
		subject: "Selamat Datang di Aplikasi Keuangan!",
		body:    body,
	})
}

func (m *Mailer) SendLargeExpenseAlert(email, username string, t models.Transaction) {
	body := fmt.Sprintf(`
		<h1>Notifikasi Pengeluaran Besar</h1>
		<p>Halo, %s,</p>
		<p>Kami mendeteksi pengeluaran besar dari akun Anda:</p>
		<ul>
			<li><strong>Jumlah:</strong> Rp %.2f</li>
			<li><strong>Deskripsi:</strong> %s</li>
			<li><strong>Tanggal:</strong> %s</li>
		</ul>
		<p>Terima kasih telah menggunakan aplikasi kami.</p>`,
		username, t.Amount, t.Description, t.Date.Format("02-01-2006"))
	m.enqueue(message{
		to:      email,
		subject: fmt.Sprintf("Notifikasi Pengeluaran Besar: %s", t.Description),
		body:    body,
	})
}
