package utils

import (
	"elearn/config"
	"fmt"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password
	if from == "" {
		fmt.Println("Email sender not configured, skipping:", subject)
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learning Platform <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML Wrapper for a consistent look across notification mails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B2A4A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B2A4A; line-height: 1.6; }
			.content h2 { color: #1B2A4A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #2E8B57; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #2E8B57; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>Learning Platform</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This is an automated message, please do not reply.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendModerationDecisionEmail notifies the course owner of an approve/reject decision
func SendModerationDecisionEmail(to, courseTitle, decision, reason string) error {
	body := fmt.Sprintf(`<p>Your course <strong>%s</strong> has been <strong>%s</strong> by our moderation team.</p>`, courseTitle, decision)
	if reason != "" {
		body += fmt.Sprintf(`<div class="info-box">Reviewer note: %s</div>`, reason)
	}
	if decision == "approved" {
		body += `<p>You can now publish it to make it visible to learners.</p>`
	} else {
		body += `<p>Update the course content to submit it for review again.</p>`
	}
	return SendEmail([]string{to}, fmt.Sprintf("Course %s: %s", decision, courseTitle), getEmailTemplate("Moderation decision", body))
}

// SendCertificateEmail notifies a learner that a certificate was issued
func SendCertificateEmail(to, courseTitle, certificateNumber, artifactURL string) error {
	body := fmt.Sprintf(`
		<p>Congratulations! Your certificate for <strong>%s</strong> has been issued.</p>
		<div class="info-box">Certificate number: %s</div>`, courseTitle, certificateNumber)
	if artifactURL != "" {
		body += fmt.Sprintf(`<a class="btn" href="%s">Download certificate</a>`, artifactURL)
	}
	return SendEmail([]string{to}, "Your certificate is ready!", getEmailTemplate("Certificate issued", body))
}

// SendPendingModerationDigest mails admins the list of courses awaiting review
func SendPendingModerationDigest(to []string, courseTitles []string) error {
	if len(to) == 0 || len(courseTitles) == 0 {
		return nil
	}
	var items strings.Builder
	for _, title := range courseTitles {
		items.WriteString(fmt.Sprintf("<li>%s</li>", title))
	}
	body := fmt.Sprintf(`
		<p>%d course(s) are waiting for moderation review:</p>
		<ul>%s</ul>`, len(courseTitles), items.String())
	return SendEmail(to, fmt.Sprintf("%d courses pending review", len(courseTitles)), getEmailTemplate("Moderation queue digest", body))
}
