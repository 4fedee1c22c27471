// Package fixture produces competition table sets for tests, demos and load
// runs of the export pipeline.
package fixture

import (
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
)

// Tables maps a source table name to its rows.
type Tables map[string][]model.Row

// SampleCompetitionID is the competition of Sample.
const SampleCompetitionID = 7

// Sample returns a small competition with the usual data defects: rows
// without keys, a club without an abbreviation, a club without any name,
// a lane without a start position and rows of a second competition.
//
// The 500m program "Open A" has races "1A" and "1B". Race "1A" holds two
// lanes with start positions 2 and 1.
func Sample() Tables {
	return Tables{
		model.TableCompetition: {
			{"NoCompetition": "7", "Lieu": "Montréal", "Date": "2024-02-10 00:00:00", "NoClub": "3"},
		},
		model.TableSkaters: {
			{"NoPatineur": "1", "Prenom": "Marie", "Nom": "Dion", "CodePat": "QC-0001", "NoClub": "3", "Sexe": "F"},
			{"NoPatineur": "2", "Prenom": "Léa", "Nom": "Tremblay", "CodePat": "QC-0002", "NoClub": "4", "Sexe": "F"},
			{"NoPatineur": "3", "Prenom": "Sam", "Nom": "Roy", "CodePat": "ON-0003", "NoClub": "5", "Sexe": "M"},
			{"NoPatineur": "", "Prenom": "Ghost"},
		},
		model.TableClubs: {
			{"NoClub": "3", "Nom du Club": "Club de Montréal", "Abreviation": "CPVM", "NoRegion": "1"},
			{"NoClub": "4", "Nom du Club": "Club de Québec", "Abreviation": ""},
			{"NoClub": "5"},
		},
		model.TableSkaterComp: {
			{"NoPatCompe": "10", "NoCompetition": "7", "NoPatineur": "1", "NoClub": "3", "NoCasque": "21", "Groupe": "A", "Retirer": "0"},
			{"NoPatCompe": "11", "NoCompetition": "7", "NoPatineur": "2", "NoClub": "4", "NoCasque": "22", "Retirer": "1"},
			{"NoPatCompe": "12", "NoCompetition": "7", "NoPatineur": "3", "NoClub": "5"},
			{"NoPatCompe": "20", "NoCompetition": "8", "NoPatineur": "1", "NoClub": "3", "NoCasque": "99"},
		},
		model.TableDistances: {
			{"NoDistance": "1", "Distance": "500m", "LongueurEpreuve": "500"},
			{"NoDistance": "2", "Distance": "777m (111)", "LongueurEpreuve": "777.0"},
		},
		model.TableProgram: {
			{"CleDistancesCompe": "100", "NoCompetition": "7", "NoDistance": "1", "Distance": "500m", "Groupe": "Open A", "OrdreSequence": "1"},
			{"CleDistancesCompe": "200", "NoCompetition": "8", "NoDistance": "2", "Groupe": "Other"},
		},
		model.TableWaves: {
			{"CleTVagues": "1001", "NoVague": "1B", "CleDistancesCompe": "100", "Seq": "2"},
			{"CleTVagues": "1000", "NoVague": "1A", "CleDistancesCompe": "100", "Seq": "1", "Qual_ou_Fin": "Q"},
			{"CleTVagues": "2000", "NoVague": "9A", "CleDistancesCompe": "200"},
		},
		model.TableWaveAssignment: {
			{"CleTPatVagues": "5001", "CleTVagues": "1000", "NoPatCompe": "10", "NoCasque": "2"},
			{"CleTPatVagues": "5002", "CleTVagues": "1000", "NoPatCompe": "11", "NoCasque": "1", "Temps": "45.120", "Rang": "1"},
			{"CleTPatVagues": "5003", "CleTVagues": "1001", "NoPatCompe": "12"},
			{"CleTPatVagues": "5004", "CleTVagues": "2000", "NoPatCompe": "20", "NoCasque": "1"},
			{"CleTPatVagues": "5005", "CleTVagues": "1001", "NoPatCompe": "20", "NoCasque": "1"},
			{"CleTVagues": "1000", "NoPatCompe": "10", "NoCasque": "3"},
		},
	}
}

// SampleEVT is the EVT rendering of Sample.
const SampleEVT = "1A,1,01,1A Open A 500m 100m\n" +
	",22,1,Tremblay,Léa,Club de Québec,,QC-0002\n" +
	",21,2,Dion,Marie,CPVM,,QC-0001\n" +
	"1B,1,01,1B Open A 500m 100m\n" +
	",0,1,,,,,\n" +
	",0,,Roy,Sam,,,ON-0003\n"
