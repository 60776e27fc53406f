package cmd

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	KafkaHost               string
	KafkaEventsTopic        string
	KafkaNotificationsTopic string
	VendorIntakeURL         string
	AttributionURL          string
	PickupLocation          string
	PickupInstructions      string
}
