package postgres

/*
 * Enumerated string types shared by the models. They are stored as plain
 * varchar columns so old rows with legacy values still scan.
 */

// TipoUsuario is the ordered skill tier of a user (lowest to highest).
type TipoUsuario string

const (
	TipoIniciante     TipoUsuario = "iniciante"
	TipoIntermediario TipoUsuario = "intermediario"
	TipoAvancado      TipoUsuario = "avancado"
	TipoProfissional  TipoUsuario = "profissional"
)

// TipoPartida distinguishes casual matches from ranked ones.
type TipoPartida string

const (
	PartidaAmistosa    TipoPartida = "amistosa"    // casual, base points
	PartidaCompetitiva TipoPartida = "competitiva" // ranked, points doubled
)

// CategoriaPartida is the per-match skill gate.
type CategoriaPartida string

const (
	CategoriaIniciante     CategoriaPartida = "iniciante"
	CategoriaIntermediario CategoriaPartida = "intermediario"
	CategoriaAvancado      CategoriaPartida = "avancado"
	CategoriaProfissional  CategoriaPartida = "profissional"
	CategoriaLivre         CategoriaPartida = "livre" // any tier
)

// StatusPartida is the lifecycle status of a match.
type StatusPartida string

const (
	PartidaAtiva       StatusPartida = "ativa"        // created, waiting for participants
	PartidaMarcada     StatusPartida = "marcada"      // every participant confirmed
	PartidaEmAndamento StatusPartida = "em_andamento" // happening right now
	PartidaFinalizada  StatusPartida = "finalizada"   // over, scores recorded
	PartidaCancelada   StatusPartida = "cancelada"
	PartidaInativa     StatusPartida = "inativa" // hidden by the organizer
)

// StatusConvite is the lifecycle status of an invitation.
type StatusConvite string

const (
	ConvitePendente StatusConvite = "pendente"
	ConviteAceito   StatusConvite = "aceito"
	ConviteRecusado StatusConvite = "recusado"
	ConviteExpirado StatusConvite = "expirado"
)
