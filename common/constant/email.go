package constant

const EmailTicketDeliveryTemplate = `
Dear %s,

Your booking is confirmed and your e-ticket is attached to this email.

Booking Details:
------------------------------------------
Invoice Number: %s
Event: %s
Date: %s, %s
Venue: %s
Total Amount: %s
------------------------------------------

Please present the attached ticket (printed or on your phone) at the
venue entrance. The QR code on the ticket will be scanned for entry.

If you have any questions or need assistance, please contact our support
team at support@ticketooz.com.

Best regards,
Ticketooz Team

Note: This is an automated message, please do not reply to this email.
`
