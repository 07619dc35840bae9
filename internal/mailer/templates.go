package mailer

import "fmt"

func membershipAdminBody(evt MembershipCheckoutEvent) string {
	return fmt.Sprintf(`<h2>Membership checkout started</h2>
<p>Customer: %s</p>
<p>Tier: %s</p>
<p>Billing cycle: %s</p>`, evt.Email, evt.TierName, evt.Cycle)
}

func membershipUserBody(evt MembershipCheckoutEvent) string {
	return fmt.Sprintf(`<h2>Thanks for choosing the %s plan</h2>
<p>Your %s subscription checkout has been created. Complete the payment
to activate your membership benefits.</p>
<p>If you did not start this checkout you can safely ignore this email.</p>`,
		evt.TierName, evt.Cycle)
}

func newsletterBody(email string) string {
	return fmt.Sprintf(`<h2>You're on the list</h2>
<p>%s is now subscribed to Ventaro product updates and AI business tips.</p>`, email)
}
