package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"mopay/config"
)

// SendEmail delivers an HTML email through the configured SMTP account.
func SendEmail(cfg *config.Config, to []string, subject, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := cfg.EmailSender
	password := cfg.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Mopay <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

// SendOTPEmail sends the verification code used during signup.
func SendOTPEmail(cfg *config.Config, otp, email string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Mopay Verification</h2>
					<p style="font-size: 16px; color: #555555; text-align: center;">Your One Time Password (OTP) is:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999; text-align: center;">Do not share this OTP with anyone.</p>
				</div>
			</body>
		</html>
	`, otp)

	return SendEmail(cfg, []string{email}, "OTP Verification Code for Mopay", body)
}
