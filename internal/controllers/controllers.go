package controllers

import (
	"emoshown/config"
	"emoshown/internal/database"
	"emoshown/internal/repositories"
	"emoshown/internal/services"

	analysisController "emoshown/internal/controllers/analysis"
	journalController "emoshown/internal/controllers/journal"
	questionnaireController "emoshown/internal/controllers/questionnaire"
	recommendationController "emoshown/internal/controllers/recommendation"
)

type Controllers struct {
	Journal        journalController.JournalControllerInterface
	Questionnaire  questionnaireController.QuestionnaireControllerInterface
	Analysis       analysisController.AnalysisControllerInterface
	Recommendation recommendationController.RecommendationControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Journal:        journalController.New(repos, services, config, db),
		Questionnaire:  questionnaireController.New(repos, services, config, db),
		Analysis:       analysisController.New(repos, services, config, db),
		Recommendation: recommendationController.New(repos, services, config, db),
	}
}
