package service

import (
	"fmt"
	"html"
)

// Plain HTML bodies for the transactional emails. Kept as Go builders
// instead of template files so the service layer has no disk dependency.
// Простые HTML тела транзакционных писем. Оформлены как Go функции,
// а не файлы шаблонов, чтобы сервисный слой не зависел от диска.

// activationEmailBody builds the account activation email.
// activationEmailBody формирует письмо активации аккаунта.
func activationEmailBody(firstName, activationURL string) string {
	return fmt.Sprintf(`<html><body>
<h2>Bienvenido, %s</h2>
<p>Gracias por registrarte. Para activar tu cuenta haz clic en el siguiente enlace:</p>
<p><a href="%s">Activar mi cuenta</a></p>
<p>Si no creaste esta cuenta, ignora este mensaje.</p>
</body></html>`, html.EscapeString(firstName), activationURL)
}

// resetCodeEmailBody builds the password reset code email.
// resetCodeEmailBody формирует письмо с кодом сброса пароля.
func resetCodeEmailBody(code string, ttlMinutes int) string {
	return fmt.Sprintf(`<html><body>
<h2>Recuperación de contraseña</h2>
<p>Tu código de verificación es:</p>
<p style="font-size:24px;font-weight:bold;letter-spacing:4px">%s</p>
<p>El código expira en %d minutos. Si no solicitaste este código, ignora este mensaje.</p>
</body></html>`, html.EscapeString(code), ttlMinutes)
}

// passwordChangedEmailBody builds the password change notification.
// passwordChangedEmailBody формирует уведомление о смене пароля.
func passwordChangedEmailBody() string {
	return `<html><body>
<h2>Contraseña actualizada</h2>
<p>Tu contraseña fue cambiada correctamente. Todas las sesiones abiertas fueron cerradas.</p>
<p>Si no realizaste este cambio, contacta a soporte inmediatamente.</p>
</body></html>`
}

// contactEmailBody builds the contact form forward sent to the support inbox.
// contactEmailBody формирует пересылку формы обратной связи в поддержку.
func contactEmailBody(name, email, message string) string {
	return fmt.Sprintf(`<html><body>
<h2>Nuevo mensaje de contacto</h2>
<p><strong>Nombre:</strong> %s</p>
<p><strong>Correo:</strong> %s</p>
<p>%s</p>
</body></html>`, html.EscapeString(name), html.EscapeString(email), html.EscapeString(message))
}
