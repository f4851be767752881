package services

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rekognitiontypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

const (
	rekognitionMaxLabels     = 10
	rekognitionMinConfidence = 55
)

// RekognitionDetector labels meal photos with AWS Rekognition.
type RekognitionDetector struct {
	client *rekognition.Client
}

func NewRekognitionDetector(ctx context.Context) (*RekognitionDetector, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		return nil, errors.New("AWS_REGION is not set")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &RekognitionDetector{client: rekognition.NewFromConfig(cfg)}, nil
}

func (detector *RekognitionDetector) DetectLabels(ctx context.Context, image []byte) ([]Label, error) {
	out, err := detector.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &rekognitiontypes.Image{Bytes: image},
		MaxLabels:     aws.Int32(rekognitionMaxLabels),
		MinConfidence: aws.Float32(rekognitionMinConfidence),
	})
	if err != nil {
		return nil, err
	}

	labels := make([]Label, 0, len(out.Labels))
	for _, detected := range out.Labels {
		if detected.Name == nil {
			continue
		}
		confidence := 0.0
		if detected.Confidence != nil {
			confidence = float64(*detected.Confidence) / 100
		}
		labels = append(labels, Label{Name: *detected.Name, Confidence: confidence})
	}
	return labels, nil
}

// UnconfiguredDetector stands in when no analysis backend is configured.
// Every analysis fails with an explicit message instead of hanging uploads.
type UnconfiguredDetector struct{}

func (UnconfiguredDetector) DetectLabels(context.Context, []byte) ([]Label, error) {
	return nil, errors.New("image analysis backend not configured")
}
