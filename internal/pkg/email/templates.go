package email

// Email templates in HTML format

// BaseTemplate is the base layout for all emails
const BaseTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
            background-color: #faf7f2;
            color: #1f1f1f;
        }
        .container { max-width: 600px; margin: 0 auto; padding: 40px 20px; }
        .card { background: #ffffff; border-radius: 12px; padding: 32px; border: 1px solid #e8e2d8; }
        .logo { text-align: center; margin-bottom: 24px; }
        .logo h1 { font-size: 26px; color: #b08d57; margin: 0; letter-spacing: 2px; }
        .details { background: #faf7f2; border-radius: 8px; padding: 16px; margin: 16px 0; }
        .details td { padding: 4px 12px 4px 0; font-size: 14px; }
        .footer { text-align: center; font-size: 12px; color: #8a8a8a; margin-top: 24px; }
        a.button {
            display: inline-block; background: #b08d57; color: #ffffff;
            padding: 12px 28px; border-radius: 8px; text-decoration: none;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            <div class="logo"><h1>LUMEN STUDIO</h1></div>
            {{template "content" .}}
        </div>
        <div class="footer">Lumen Studio · This is an automated message, please do not reply.</div>
    </div>
</body>
</html>
`

// BookingConfirmationTemplate confirms a new booking and links to payment.
const BookingConfirmationTemplate = `
{{define "content"}}
<h2>Your session is booked, {{.CustomerName}}!</h2>
<p>We received your booking request. Here are the details:</p>
<table class="details">
    <tr><td>Package</td><td><strong>{{.PackageName}}</strong></td></tr>
    <tr><td>Date</td><td>{{.Date}}</td></tr>
    <tr><td>Start time</td><td>{{.StartTime}}</td></tr>
    {{if .LocationName}}<tr><td>Location</td><td>{{.LocationName}}</td></tr>{{end}}
    <tr><td>Total</td><td><strong>{{.Total}} ₸</strong></td></tr>
</table>
{{if .PaymentURL}}
<p>To secure your slot, please complete the payment:</p>
<p style="text-align:center"><a class="button" href="{{.PaymentURL}}">Pay now</a></p>
{{end}}
<p>Our team will confirm your session shortly. See you in the studio!</p>
{{end}}
`

// BookingPaidTemplate notifies the customer that payment went through.
const BookingPaidTemplate = `
{{define "content"}}
<h2>Payment received</h2>
<p>Hi {{.CustomerName}}, your payment of <strong>{{.Total}} ₸</strong> for the
<strong>{{.PackageName}}</strong> session on {{.Date}} at {{.StartTime}} has been received.</p>
<p>Your booking is confirmed. We look forward to seeing you!</p>
{{end}}
`

// ContactAckTemplate acknowledges a contact-form message.
const ContactAckTemplate = `
{{define "content"}}
<h2>Thanks for reaching out, {{.Name}}!</h2>
<p>We received your message{{if .Subject}} about &laquo;{{.Subject}}&raquo;{{end}} and will
get back to you within one business day.</p>
{{end}}
`
