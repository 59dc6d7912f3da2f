package mail

import "fmt"

const (
	subjectDriverConfirmation = "Reservation Confirmed - Welcome!"
	subjectAdminNotification  = "New Driver Registration - Action Required"
	subjectCollect            = "Your Documents Are Ready for Collection"
	subjectIssue              = "Action Required: Issue with Your Reservation"
)

func wrapBody(headerColor, title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: %s; padding: 20px; text-align: center; border-radius: 5px; }
    .content { padding: 20px; background: #fff; }
    .footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>%s</h1></div>
    <div class="content">%s</div>
    <div class="footer"><p>Flex_vry Truck Reservation System</p></div>
  </div>
</body>
</html>`, headerColor, title, content)
}

func driverConfirmationBody(firstName, lastName string) string {
	content := fmt.Sprintf(`<h2>Hello %s %s,</h2>
<p>Your reservation has been successfully received and confirmed!</p>
<p><strong>Please take a coffee and wait in your truck.</strong>
Our team member will come to you when your paperwork is finished and ready for processing.</p>
<p>Thank you for your patience and cooperation!</p>`, firstName, lastName)
	return wrapBody("#f8f9fa", "Reservation Confirmed!", content)
}

func adminNotificationBody(firstName, lastName, dashboardURL string) string {
	content := fmt.Sprintf(`<h3>Action Required</h3>
<p>You have a new driver registration that requires your attention.</p>
<p><strong>First Name:</strong> %s<br/><strong>Last Name:</strong> %s</p>
<p><a href="%s">Check Dashboard</a> to review the complete driver details and process the registration.</p>`,
		firstName, lastName, dashboardURL)
	return wrapBody("#fff3cd", "New Driver Registration", content)
}

func collectBody(firstName, lastName string) string {
	content := fmt.Sprintf(`<h2>Hello %s %s,</h2>
<p>Thank you for your waiting! Your documents are now ready and processed.</p>
<p><strong>Please go to the office to collect your documents and paperwork.</strong>
Our office staff will assist you with the final steps.</p>`, firstName, lastName)
	return wrapBody("#d4edda", "Documents Ready for Collection", content)
}

func issueBody(firstName, lastName string) string {
	content := fmt.Sprintf(`<h2>Hello %s %s,</h2>
<p>The information you provided appears to be missing or incorrect.</p>
<p><strong>Please contact your boss or supervisor immediately</strong> to review
and send us the correct information. Once we receive it, we'll process your
reservation and get you back on track.</p>`, firstName, lastName)
	return wrapBody("#f8d7da", "Action Required: Issue with Your Reservation", content)
}
