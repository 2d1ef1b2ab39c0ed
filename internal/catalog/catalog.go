// Package catalog holds the built-in copies of the server's static
// configuration: themes, badges, avatars, and budget scenarios. They are
// used as fallbacks when the corresponding /config endpoints are
// unreachable, so the interface stays usable against a degraded server.
package catalog

import "ehpadacademy/internal/types"

// Themes returns the ordered learning-theme catalog.
func Themes() []types.Theme {
	return []types.Theme{
		{ID: "legislation", Name: "Législation", Description: "Règles et lois régissant les EHPAD", Icon: "⚖️", Color: "blue", Order: 0},
		{ID: "animation_types", Name: "Types d'Animation", Description: "Différentes formes d'animation en EHPAD", Icon: "🎭", Color: "green", Order: 1},
		{ID: "project_management", Name: "Gestion de Projet", Description: "Planification et organisation d'activités", Icon: "📋", Color: "purple", Order: 2},
		{ID: "budget_management", Name: "Gestion de Budget", Description: "Maîtrise des aspects financiers", Icon: "💰", Color: "orange", Order: 3},
	}
}

// Badges returns the badge catalog.
func Badges() []types.Badge {
	return []types.Badge{
		{ID: "first_quiz", Name: "Premier Quiz", Description: "Complété votre premier quiz", Icon: "🎯"},
		{ID: "legislation_master", Name: "Maître de la Législation", Description: "Excellé en législation", Icon: "⚖️"},
		{ID: "animation_expert", Name: "Expert Animation", Description: "Maîtrise des techniques d'animation", Icon: "🎭"},
		{ID: "budget_wizard", Name: "Magicien du Budget", Description: "Parfait en gestion budgétaire", Icon: "💰"},
		{ID: "creator", Name: "Créateur", Description: "Créé votre première fiche d'activité", Icon: "✨"},
	}
}

// Avatars returns the avatar catalog with level gates.
func Avatars() []types.Avatar {
	return []types.Avatar{
		{ID: "avatar1", Name: "Animateur Débutant", Image: "👨‍🏫", Unlocked: true, RequiredLevel: 1},
		{ID: "avatar2", Name: "Animatrice Experte", Image: "👩‍🏫", RequiredLevel: 5},
		{ID: "avatar3", Name: "Coordinateur", Image: "👨‍💼", RequiredLevel: 10},
		{ID: "avatar4", Name: "Directrice", Image: "👩‍💼", RequiredLevel: 15},
	}
}

// BudgetScenarios returns the built-in budget-simulation scenarios.
func BudgetScenarios() []types.BudgetScenario {
	return []types.BudgetScenario{
		{
			ID:          "scenario1",
			Title:       "Budget Annuel Animation",
			Description: "Vous devez gérer un budget annuel de 5000€ pour les animations d'un EHPAD de 50 résidents.",
			Budget:      5000,
			Expenses: []types.BudgetExpense{
				{Category: "Matériel artistique", Amount: 1200},
				{Category: "Intervenants extérieurs", Amount: 2000},
				{Category: "Sorties", Amount: 800},
				{Category: "Fêtes et événements", Amount: 1000},
			},
			Questions: []types.BudgetQuestion{
				{
					Question:      "Quel est le budget par résident pour l'année ?",
					Options:       []string{"80€", "100€", "120€", "150€"},
					CorrectAnswer: 1,
				},
			},
		},
	}
}

// CalculatorCategories returns the default expense categories of the
// free-form budget calculator.
func CalculatorCategories() []string {
	return []string{
		"Matériel artistique",
		"Intervenants extérieurs",
		"Sorties",
		"Fêtes et événements",
		"Matériel sportif",
	}
}
