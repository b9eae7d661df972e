// Package seed installs the default course content on first start.
package seed

import (
	"context"
	"log"

	"flutterlearn-service/internal/models"
	"flutterlearn-service/internal/repository"
)

const DefaultCourseID = "flutter-mastery"

var defaultModules = []models.CourseModule{
	{
		ID: "flutter-intro", CourseID: DefaultCourseID, Order: 1,
		Title:       "Introduction à Flutter",
		Description: "Découverte de Flutter, installation du SDK et premier projet.",
		Difficulty:  models.DifficultyEasy, IsFirst: true,
		Topics:        []string{"installation", "flutter doctor", "hot reload", "structure de projet"},
		QuestionCount: models.DefaultQuestionCount,
	},
	{
		ID: "dart-basics", CourseID: DefaultCourseID, Order: 2,
		Title:       "Les bases de Dart",
		Description: "Variables, fonctions, classes, null safety et collections en Dart.",
		Difficulty:  models.DifficultyEasy, Prerequisite: "flutter-intro",
		Topics:        []string{"variables", "fonctions", "classes", "null safety", "collections"},
		QuestionCount: models.DefaultQuestionCount,
	},
	{
		ID: "widgets-fundamentals", CourseID: DefaultCourseID, Order: 3,
		Title:       "Widgets fondamentaux",
		Description: "StatelessWidget, StatefulWidget et l'arbre de widgets.",
		Difficulty:  models.DifficultyEasy, Prerequisite: "dart-basics",
		Topics:        []string{"StatelessWidget", "StatefulWidget", "build", "arbre de widgets"},
		QuestionCount: models.DefaultQuestionCount,
	},
	{
		ID: "layouts", CourseID: DefaultCourseID, Order: 4,
		Title:       "Mise en page",
		Description: "Row, Column, Stack, Expanded et les contraintes de layout.",
		Difficulty:  models.DifficultyMedium, Prerequisite: "widgets-fundamentals",
		Topics:        []string{"Row", "Column", "Stack", "Expanded", "contraintes"},
		QuestionCount: models.DefaultQuestionCount,
	},
	{
		ID: "navigation", CourseID: DefaultCourseID, Order: 5,
		Title:       "Navigation et routes",
		Description: "Navigator, routes nommées et passage de paramètres entre écrans.",
		Difficulty:  models.DifficultyMedium, Prerequisite: "layouts",
		Topics:        []string{"Navigator", "routes nommées", "arguments", "retour de valeur"},
		QuestionCount: models.DefaultQuestionCount,
	},
	{
		ID: "state-management", CourseID: DefaultCourseID, Order: 6,
		Title:       "Gestion d'état",
		Description: "setState, InheritedWidget, Provider et les patterns de gestion d'état.",
		Difficulty:  models.DifficultyMedium, Prerequisite: "navigation",
		Topics:        []string{"setState", "InheritedWidget", "Provider", "ChangeNotifier"},
		QuestionCount: models.DefaultQuestionCount,
	},
	{
		ID: "forms-validation", CourseID: DefaultCourseID, Order: 7,
		Title:       "Formulaires et validation",
		Description: "TextFormField, Form, validation et gestion du focus.",
		Difficulty:  models.DifficultyMedium, Prerequisite: "state-management",
		Topics:        []string{"Form", "TextFormField", "validation", "focus"},
		QuestionCount: models.DefaultQuestionCount,
	},
	{
		ID: "http-async", CourseID: DefaultCourseID, Order: 8,
		Title:       "HTTP et asynchrone",
		Description: "Future, async/await, appels HTTP et désérialisation JSON.",
		Difficulty:  models.DifficultyHard, Prerequisite: "forms-validation",
		Topics:        []string{"Future", "async/await", "http", "json"},
		QuestionCount: models.DefaultQuestionCount,
	},
	{
		ID: "persistence", CourseID: DefaultCourseID, Order: 9,
		Title:       "Persistance locale",
		Description: "SharedPreferences, sqflite et stockage de fichiers.",
		Difficulty:  models.DifficultyHard, Prerequisite: "http-async",
		Topics:        []string{"SharedPreferences", "sqflite", "fichiers", "sérialisation"},
		QuestionCount: models.DefaultQuestionCount,
	},
	{
		ID: "deployment", CourseID: DefaultCourseID, Order: 10,
		Title:       "Tests et déploiement",
		Description: "Tests unitaires et de widgets, build release et publication.",
		Difficulty:  models.DifficultyHard, Prerequisite: "persistence",
		Topics:        []string{"tests unitaires", "tests de widgets", "build release", "stores"},
		QuestionCount: models.DefaultQuestionCount,
	},
}

// EnsureModules installs the default course modules when the collection
// has none for the course. Existing content is never touched.
func EnsureModules(ctx context.Context, repo *repository.ModuleRepository) error {
	existing, err := repo.FindByCourse(ctx, DefaultCourseID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for i := range defaultModules {
		m := defaultModules[i]
		if err := repo.Create(ctx, &m); err != nil {
			return err
		}
	}
	log.Printf("Seeded %d modules for course %s", len(defaultModules), DefaultCourseID)
	return nil
}
