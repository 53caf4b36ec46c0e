package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	PublicBaseURL     string
	TaxRate           float64
	OfferValidityDays int
	ReminderAfterDays int
	JWTSecret         string
}
