package categoria

import (
	models "Quadra/models/postgres"
)

/*
 * Pure eligibility rules mapping (player tier, match category) to a result.
 * Total over every tier/category pair, including legacy category strings
 * that predate the current enum: those behave as "livre".
 *
 * Rules:
 * - livre: any tier may join
 * - iniciante: only iniciante players
 * - intermediario: intermediario and above
 * - avancado: avancado and profissional
 * - profissional: only profissional players
 */

// PodeParticipar reports whether a player of the given tier may join a
// match of the given category.
func PodeParticipar(tipo models.TipoUsuario, cat models.CategoriaPartida) bool {
	switch cat {
	case models.CategoriaIniciante:
		return tipo == models.TipoIniciante
	case models.CategoriaIntermediario:
		return tipo == models.TipoIntermediario ||
			tipo == models.TipoAvancado ||
			tipo == models.TipoProfissional
	case models.CategoriaAvancado:
		return tipo == models.TipoAvancado || tipo == models.TipoProfissional
	case models.CategoriaProfissional:
		return tipo == models.TipoProfissional
	default:
		// livre, plus any unknown legacy value
		return true
	}
}

// CategoriasPermitidas returns every category the tier may join. Livre is
// always included.
func CategoriasPermitidas(tipo models.TipoUsuario) []models.CategoriaPartida {
	categorias := []models.CategoriaPartida{models.CategoriaLivre}

	switch tipo {
	case models.TipoIniciante:
		categorias = append(categorias, models.CategoriaIniciante)
	case models.TipoIntermediario:
		categorias = append(categorias,
			models.CategoriaIniciante,
			models.CategoriaIntermediario)
	case models.TipoAvancado:
		categorias = append(categorias,
			models.CategoriaIniciante,
			models.CategoriaIntermediario,
			models.CategoriaAvancado)
	case models.TipoProfissional:
		categorias = append(categorias,
			models.CategoriaIniciante,
			models.CategoriaIntermediario,
			models.CategoriaAvancado,
			models.CategoriaProfissional)
	}

	return categorias
}

// NivelMinimo returns the lowest tier a category admits.
func NivelMinimo(cat models.CategoriaPartida) models.TipoUsuario {
	switch cat {
	case models.CategoriaIntermediario:
		return models.TipoIntermediario
	case models.CategoriaAvancado:
		return models.TipoAvancado
	case models.CategoriaProfissional:
		return models.TipoProfissional
	default:
		return models.TipoIniciante
	}
}

// Descricao returns a human readable description of the category
// restriction, used in error messages.
func Descricao(cat models.CategoriaPartida) string {
	switch cat {
	case models.CategoriaIniciante:
		return "Apenas para iniciantes"
	case models.CategoriaIntermediario:
		return "Para intermediários e níveis acima"
	case models.CategoriaAvancado:
		return "Para jogadores avançados e profissionais"
	case models.CategoriaProfissional:
		return "Apenas para jogadores profissionais"
	case models.CategoriaLivre:
		return "Aberto para todos os níveis"
	default:
		return "Categoria não definida"
	}
}
