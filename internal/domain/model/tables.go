package model

// Source table names.
const (
	TableCompetition    = "TCompetition"
	TableSkaters        = "TPatineurs"
	TableSkaterComp     = "TPatineur_compe"
	TableClubs          = "TClubs"
	TableDistances      = "TDistances_Standards"
	TableProgram        = "TProg_Courses"
	TableWaves          = "TVagues"
	TableWaveAssignment = "TPatVagues"
)

// Source column names.
const (
	ColCompetitionNo   = "NoCompetition"
	ColPlace           = "Lieu"
	ColDate            = "Date"
	ColClubNo          = "NoClub"
	ColSkaterNo        = "NoPatineur"
	ColFirstName       = "Prenom"
	ColLastName        = "Nom"
	ColBirthDate       = "Date de naissance"
	ColSex             = "Sexe"
	ColDivision        = "Division"
	ColCategoryNo      = "NoCategorie"
	ColSkaterCode      = "CodePat"
	ColSkaterCompNo    = "NoPatCompe"
	ColRank            = "Rang"
	ColRemoved         = "Retirer"
	ColGroup           = "Groupe"
	ColHelmet          = "NoCasque"
	ColClubName        = "Nom du Club"
	ColComment         = "Commentaire"
	ColRegionNo        = "NoRegion"
	ColAbbreviation    = "Abreviation"
	ColDistanceNo      = "NoDistance"
	ColDistance        = "Distance"
	ColRaceLength      = "LongueurEpreuve"
	ColProgramKey      = "CleDistancesCompe"
	ColWaveNo          = "NoVague"
	ColSequenceOrder   = "OrdreSequence"
	ColWaveKey         = "CleTVagues"
	ColQualOrFinal     = "Qual_ou_Fin"
	ColSeq             = "Seq"
	ColTime            = "Temps"
	ColWaveAssignmentK = "CleTPatVagues"
)
