package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/nutrilog/nutrilog/internal/models"
)

const (
	analysisQueueSize = 64

	// Portion assumed for a detected food until portion estimation exists.
	defaultPortionGrams = 150.0

	lowConfidenceMessage = "low confidence"
)

var ErrAnalysisQueueFull = errors.New("analysis queue full")

// Label is one detection result, confidence normalized to 0..1.
type Label struct {
	Name       string
	Confidence float64
}

type LabelDetector interface {
	DetectLabels(ctx context.Context, image []byte) ([]Label, error)
}

type AnalysisMealRepository interface {
	UpdateStatus(mealID string, status string, errorMessage string) error
	SaveAnalysis(mealID string, foods []models.FoodItem, summary models.NutritionSummary, analyzedAt time.Time) error
	ListUnfinished() ([]models.Meal, error)
}

type FoodMatcher interface {
	MatchLabel(label string) (models.FoodComposition, bool, error)
}

type analysisJob struct {
	MealID string
	Image  []byte
}

// AnalysisWorker drives meal records through
// UPLOADED -> PROCESSING -> ANALYZED | FAILED. It is the only writer of meal
// status; jobs are serialized through a single goroutine.
type AnalysisWorker struct {
	meals       AnalysisMealRepository
	catalog     FoodMatcher
	detector    LabelDetector
	imageLoader func(meal models.Meal) ([]byte, error)
	jobs        chan analysisJob
}

func NewAnalysisWorker(
	meals AnalysisMealRepository,
	catalog FoodMatcher,
	detector LabelDetector,
	imageLoader func(meal models.Meal) ([]byte, error),
) *AnalysisWorker {
	return &AnalysisWorker{
		meals:       meals,
		catalog:     catalog,
		detector:    detector,
		imageLoader: imageLoader,
		jobs:        make(chan analysisJob, analysisQueueSize),
	}
}

func (worker *AnalysisWorker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case job := <-worker.jobs:
				worker.process(ctx, job)
			}
		}
	}()
}

// Enqueue hands image bytes to the worker. Bytes are captured at upload time
// so analysis does not depend on the request outliving the handler.
func (worker *AnalysisWorker) Enqueue(mealID string, image []byte) error {
	select {
	case worker.jobs <- analysisJob{MealID: mealID, Image: image}:
		return nil
	default:
		return ErrAnalysisQueueFull
	}
}

// RequeueUnfinished re-enqueues meals interrupted by a restart. Meals whose
// image bytes can no longer be recovered are failed outright.
func (worker *AnalysisWorker) RequeueUnfinished() error {
	meals, err := worker.meals.ListUnfinished()
	if err != nil {
		return err
	}

	for _, meal := range meals {
		image, err := worker.imageLoader(meal)
		if err != nil {
			log.Printf("meal %s: image unavailable after restart: %v", meal.ID, err)
			if err := worker.meals.UpdateStatus(meal.ID, models.MealStatusFailed, "image data unavailable"); err != nil {
				return err
			}
			continue
		}
		if err := worker.Enqueue(meal.ID, image); err != nil {
			return err
		}
	}
	return nil
}

func (worker *AnalysisWorker) process(ctx context.Context, job analysisJob) {
	if err := worker.meals.UpdateStatus(job.MealID, models.MealStatusProcessing, ""); err != nil {
		log.Printf("meal %s: mark processing failed: %v", job.MealID, err)
		return
	}

	foods, err := worker.analyze(ctx, job.Image)
	if err != nil {
		log.Printf("meal %s: analysis failed: %v", job.MealID, err)
		worker.fail(job.MealID, err.Error())
		return
	}
	if len(foods) == 0 {
		worker.fail(job.MealID, lowConfidenceMessage)
		return
	}

	summary := SummarizeFoods(foods)
	if err := worker.meals.SaveAnalysis(job.MealID, foods, summary, time.Now()); err != nil {
		log.Printf("meal %s: save analysis failed: %v", job.MealID, err)
		worker.fail(job.MealID, "failed to store analysis")
		return
	}
	log.Printf("meal %s: analyzed, %d food(s) detected", job.MealID, len(foods))
}

func (worker *AnalysisWorker) analyze(ctx context.Context, image []byte) ([]models.FoodItem, error) {
	labels, err := worker.detector.DetectLabels(ctx, image)
	if err != nil {
		return nil, err
	}

	foods := make([]models.FoodItem, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		food, matched, err := worker.catalog.MatchLabel(label.Name)
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}
		if _, duplicate := seen[food.Code]; duplicate {
			continue
		}
		seen[food.Code] = struct{}{}

		foods = append(foods, models.FoodItem{
			Name:          food.Name,
			Confidence:    label.Confidence,
			QuantityGrams: defaultPortionGrams,
			Category:      food.Category,
			Nutrition:     ScaleNutrition(food.Per100g(), defaultPortionGrams),
		})
	}
	return foods, nil
}

func (worker *AnalysisWorker) fail(mealID string, message string) {
	if strings.TrimSpace(message) == "" {
		message = "analysis failed"
	}
	if err := worker.meals.UpdateStatus(mealID, models.MealStatusFailed, message); err != nil {
		log.Printf("meal %s: mark failed errored: %v", mealID, err)
	}
}
