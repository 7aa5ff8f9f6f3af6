// Package vision はGoogle Cloud Vision APIを使用したラベル検出クライアントを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"blog_backend/internal/feature/tagsuggest/domain/entity"
	"blog_backend/internal/feature/tagsuggest/usecase"
)

// VisionLabeler はGoogle Cloud Vision APIを使用して画像ラベルを検出します。
type VisionLabeler struct {
	client *gvision.ImageAnnotatorClient
}

// VisionLabelerがImageLabelerを実装していることをコンパイル時に検証します。
var _ usecase.ImageLabeler = (*VisionLabeler)(nil)

// NewVisionLabeler はADCを使用してVisionLabelerの新しいインスタンスを生成します。
func NewVisionLabeler(ctx context.Context) (*VisionLabeler, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionLabeler{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionLabeler) Close() error {
	return v.client.Close()
}

// DetectLabels は画像バイト列からラベルを検出します。
func (v *VisionLabeler) DetectLabels(ctx context.Context, imageData []byte) ([]entity.TagSuggestion, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LABEL_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return nil, nil
	}

	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	labels := make([]entity.TagSuggestion, 0, len(resp.Responses[0].LabelAnnotations))
	for _, label := range resp.Responses[0].LabelAnnotations {
		labels = append(labels, entity.TagSuggestion{
			Label:      label.Description,
			Confidence: label.Score,
		})
	}

	return labels, nil
}
