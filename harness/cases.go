// fall-detector - detect falls in video footage using motion heuristics
//  Copyright (C) 2026, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package harness

// Case is a labelled recording.
type Case struct {
	File       string `yaml:"file"`
	ExpectFall bool   `yaml:"expect-fall"`
}

// DefaultCases is the labelled set the detector was tuned against.
func DefaultCases() []Case {
	return []Case{
		{"chute_lumiere_lente_1.MOV", true},
		{"chute_lumiere_lente_2.MOV", true},
		{"chute_lumiere_loyde_1.MOV", true},
		{"chute_lumiere_loyde_2.MOV", true},
		{"chute_lumiere_loyde_3.MOV", true},
		{"chute_lumiere_loyde_bizzare.MOV", true},
		{"chute_lumiere_obstacle.mp4", true},
		{"chute_lumiere_retourne_loyde.MOV", true},
		{"pas_de_chute_lumiere_reveille_loyde.MOV", false},
		{"chute_noir_basic_1.mp4", true},
		{"chute_noir_basic_2.mp4", true},
		{"chute_noir_lente.mp4", true},
		{"pas_de_chute_lumiere_glissade.MOV", false},
		{"pas_de_chute_lumiere_assis_couche.MOV", false},
		{"pas_de_chute_lumiere_couche.MOV", false},
		{"pas_de_chute_lumiere_coussin.mp4", false},
		{"pas_de_chute_lumiere_eau.mp4", false},
		{"pas_de_chute_lumiere_lever_1.MOV", false},
		{"pas_de_chute_lumiere_lever_2.MOV", false},
		{"pas_de_chute_lumiere_loyde_objet.MOV", false},
		{"pas_de_chute_lumiere_loyde_rattrapage_bizzare.MOV", false},
		{"pas_de_chute_lumiere_mouvement_amples.MOV", false},
		{"pas_de_chute_lumiere_mouvement_fort.MOV", false},
		{"pas_de_chute_lumiere_mouvment_leger.MOV", false},
		{"pas_de_chute_lumiere_pipi.mp4", false},
		{"pas_de_chute_lumiere_retourne.mp4", false},
		{"pas_de_chute_lumiere_saut_1.MOV", false},
		{"pas_de_chute_lumiere_saut_2.MOV", false},
		{"pas_de_chute_noir_coussin.mp4", false},
		{"pas_de_chute_noir_eau.mp4", false},
		{"pas_de_chute_noir_mouvement.mp4", false},
		{"pas_de_chute_noir_retourne.mp4", false},
		{"pas_de_chute_penombre_multimouv.mp4", false},
	}
}
