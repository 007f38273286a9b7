package config

import (
	"flag"
	"time"
)

const (
	defaultDBDNS = ""

	defaultDeadline      = 48 * time.Hour
	defaultSweepInterval = time.Hour
)

type Flags struct {
	address string

	dbDNS string

	gatewayEndpoint string
	financeEmail    string
	baseURL         string

	jwtSecret string

	deadline      time.Duration
	sweepInterval time.Duration
}

func (flags *Flags) Init() {
	flag.StringVar(&flags.address, "a", ":8080", "Address and port to run server")

	flag.StringVar(&flags.dbDNS, "d", defaultDBDNS, "db dns")

	flag.StringVar(&flags.gatewayEndpoint, "g", "", "notification gateway endpoint")
	flag.StringVar(&flags.financeEmail, "f", "", "finance department email")
	flag.StringVar(&flags.baseURL, "b", "http://localhost:8080", "public base URL used in validation links")

	flag.StringVar(&flags.jwtSecret, "s", "change-this-secret-in-production", "JWT signing secret")

	flag.DurationVar(&flags.deadline, "t", defaultDeadline, "validation deadline before automatic timeout")
	flag.DurationVar(&flags.sweepInterval, "i", defaultSweepInterval, "interval between timeout sweep passes")

	flag.Parse()
}
