// Package status holds the static documents served by the status functions
package status

import (
	"time"

	"github.com/chimera-ai/functions/shared/apigateway"
)

const (
	statusOperational = "operational"
	monicaAuthority   = 0.99999
	accuracy          = 0.9997
	totalAgents       = 2048
	// ErrAWSSDK is the error label of a failed AWS SDK check
	ErrAWSSDK = "AWS SDK Error"
)

var compliance = []string{"SOC2", "GDPR", "HIPAA"}

// OperationalStatus is the liveness document of the status function
type OperationalStatus struct {
	Status          string  `json:"status"`
	MonicaAuthority float64 `json:"monica_authority"`
	Timestamp       string  `json:"timestamp"`
}

// AWSSDKStatus is the document returned once the AWS SDK clients are built
type AWSSDKStatus struct {
	Status          string   `json:"status"`
	AWSSDK          string   `json:"aws_sdk"`
	MonicaAuthority float64  `json:"monica_authority"`
	Agents          int      `json:"agents"`
	Latency         string   `json:"latency"`
	Accuracy        float64  `json:"accuracy"`
	Compliance      []string `json:"compliance"`
	Timestamp       string   `json:"timestamp"`
}

// AWSSDKError is the document returned when the AWS SDK clients can not be built
type AWSSDKError struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Agents is the agent pool breakdown of the platform document
type Agents struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Idle   int `json:"idle"`
}

// PlatformDatabase describes the edge database of the platform document
type PlatformDatabase struct {
	Provider string `json:"provider"`
	Status   string `json:"status"`
	Region   string `json:"region"`
}

// PlatformStatus is the document of the edge status function
type PlatformStatus struct {
	Status          string           `json:"status"`
	MonicaAuthority float64          `json:"monica_authority"`
	Accuracy        float64          `json:"accuracy"`
	LatencyMs       int              `json:"latency_ms"`
	Agents          Agents           `json:"agents"`
	Platform        string           `json:"platform"`
	EdgeLocations   int              `json:"edge_locations"`
	Compliance      []string         `json:"compliance"`
	Database        PlatformDatabase `json:"database"`
	Timestamp       string           `json:"timestamp"`
}

// Operational returns the liveness document at now
func Operational(now time.Time) *OperationalStatus {
	return &OperationalStatus{
		Status:          statusOperational,
		MonicaAuthority: monicaAuthority,
		Timestamp:       apigateway.Timestamp(now),
	}
}

// AWSSDK returns the AWS SDK document at now
func AWSSDK(now time.Time) *AWSSDKStatus {
	return &AWSSDKStatus{
		Status:          statusOperational,
		AWSSDK:          "loaded",
		MonicaAuthority: monicaAuthority,
		Agents:          totalAgents,
		Latency:         "<3ms",
		Accuracy:        accuracy,
		Compliance:      compliance,
		Timestamp:       apigateway.Timestamp(now),
	}
}

// NewAWSSDKError returns the failure document of the AWS SDK check
func NewAWSSDKError(err error, now time.Time) *AWSSDKError {
	return &AWSSDKError{
		Error:     ErrAWSSDK,
		Message:   err.Error(),
		Timestamp: apigateway.Timestamp(now),
	}
}

// Platform returns the edge platform document at now
func Platform(now time.Time) *PlatformStatus {
	return &PlatformStatus{
		Status:          statusOperational,
		MonicaAuthority: monicaAuthority,
		Accuracy:        accuracy,
		LatencyMs:       2,
		Agents: Agents{
			Total:  totalAgents,
			Active: 1847,
			Idle:   201,
		},
		Platform:      "Cloudflare Pages",
		EdgeLocations: 275,
		Compliance:    compliance,
		Database: PlatformDatabase{
			Provider: "Cloudflare D1",
			Status:   "Connected",
			Region:   "Global",
		},
		Timestamp: apigateway.Timestamp(now),
	}
}
