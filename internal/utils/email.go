package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	"fastfeast_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendConfirmationEmail envoie l'e-mail de confirmation de commande, avec le
// reçu PDF en pièce jointe quand il a pu être généré.
func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP_HOST absent — e-mail de confirmation non envoyé")
		return nil
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}

	msg := mail.NewMsg()
	if err := msg.From(fromAddress()); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("recu_fastfeast.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

func fromAddress() string {
	if from := os.Getenv("SMTP_FROM"); from != "" {
		return from
	}
	return "noreply@fastfeast.com"
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande.
// qrBase64 est le QR de suivi (data URL), vide si non généré.
func GenerateOrderConfirmationHTML(order *models.Order, qrBase64 string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.2f</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.2f</td>
			</tr>`, item.FoodItemID, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	qrHTML := ""
	if qrBase64 != "" {
		qrHTML = fmt.Sprintf(`<p>Suivez votre commande :</p><img src="%s" alt="QR suivi" width="160" height="160"/>`, qrBase64)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">FastFeast — commande confirmée 🎉</h2>
		<p>Bonjour,</p>
		<p>Votre paiement a bien été reçu. Votre commande <strong>%s</strong> est confirmée.</p>

		<h3>Détails</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Plat</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p>Frais de livraison : ₹%.2f</p>
		<p><strong>Total : ₹%.2f</strong></p>
		<p>Livraison à : %s</p>
		<p>Estimation : %s</p>
		%s
	</div>
</body>
</html>`, order.ID, itemsHTML, order.DeliveryFee, order.TotalAmount,
		order.DeliveryAddress, order.EstimatedDeliveryTime, qrHTML)
}
