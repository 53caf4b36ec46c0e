package smtp

// Template sets for the workflow emails. The same named templates exist in
// both sets; the text versions are what clients without HTML rendering see.

const htmlTemplateSet = `
{{define "invitation"}}<html><body>
<p>Gentile {{.CarrierName}},</p>
<p>siete invitati a presentare un preventivo per il trasporto
<strong>{{.RequestCode}}</strong> &mdash; {{.RequestTitle}}
({{.PickupCity}} &rarr; {{.DeliveryCity}}).</p>
<p><a href="{{.ResponseURL}}">Inserite la vostra offerta</a></p>
<p>Il link &egrave; personale e non va inoltrato.</p>
</body></html>{{end}}

{{define "confirmation"}}<html><body>
<p>Gentile {{.CarrierName}},</p>
<p>la vostra offerta per il trasporto <strong>{{.RequestCode}}</strong>
&mdash; {{.RequestTitle}} &egrave; stata confermata.</p>
<p>Importo: <strong>{{.TotalPrice}} &euro;</strong><br>
Ritiro previsto: {{.PickupDate.Format "02/01/2006"}}</p>
</body></html>{{end}}

{{define "cancellation"}}<html><body>
<p>Gentile {{.CarrierName}},</p>
<p>l'incarico per il trasporto <strong>{{.RequestCode}}</strong>
&mdash; {{.RequestTitle}} &egrave; stato annullato.</p>
<p>Ci scusiamo per il disagio.</p>
</body></html>{{end}}

{{define "reminder"}}<html><body>
<p>Gentile {{.CarrierName}},</p>
<p>non abbiamo ancora ricevuto la vostra offerta per il trasporto
<strong>{{.RequestCode}}</strong> &mdash; {{.RequestTitle}}.</p>
<p><a href="{{.ResponseURL}}">Inserite la vostra offerta</a></p>
</body></html>{{end}}
`

const textTemplateSet = `
{{define "invitation"}}Gentile {{.CarrierName}},

siete invitati a presentare un preventivo per il trasporto {{.RequestCode}}
({{.RequestTitle}}), {{.PickupCity}} - {{.DeliveryCity}}.

Inserite la vostra offerta: {{.ResponseURL}}

Il link e' personale e non va inoltrato.{{end}}

{{define "confirmation"}}Gentile {{.CarrierName}},

la vostra offerta per il trasporto {{.RequestCode}} ({{.RequestTitle}})
e' stata confermata.

Importo: {{.TotalPrice}} EUR
Ritiro previsto: {{.PickupDate.Format "02/01/2006"}}{{end}}

{{define "cancellation"}}Gentile {{.CarrierName}},

l'incarico per il trasporto {{.RequestCode}} ({{.RequestTitle}})
e' stato annullato.

Ci scusiamo per il disagio.{{end}}

{{define "reminder"}}Gentile {{.CarrierName}},

non abbiamo ancora ricevuto la vostra offerta per il trasporto
{{.RequestCode}} ({{.RequestTitle}}).

Inserite la vostra offerta: {{.ResponseURL}}{{end}}
`
