/*
 * doc.go, part of gorelax.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package relax is the main package of the gorelax library. It provides the objective function
for model-free analysis of NMR relaxation data: given the relaxation rates (R1, R2, NOE) of a set of
spins measured at one or more magnetic fields, the Mf type computes the chi-squared between the data
and the rates predicted by a model-free model, together with its exact gradient and Hessian over the
parameters of the global diffusion tensor and of the internal motions of each spin.


	**gorelax Capabilities**

    Diffusion tensors: sphere, spheroid and ellipsoid (package diffusion), including the
	conversion between the parameters and the 3x3 tensor.

    Model-free spectral densities: original (S2, te), extended (S2f, tf, S2, ts) and extended2
	(S2f, tf, S2s, ts) equations (package jw).

    R1, R2 and NOE, with free bond length, CSA and chemical exchange (package ri).

    Four optimization modes: a single spin with a fixed tensor, a single spin with its own local
	correlation time, the diffusion tensor alone over all spins, and the tensor and all spins together.

    Parameter scaling, the Jacobian of the data for Levenberg-Marquardt-type optimizers, and the
	back-calculation of the data.

    Minimization with gonum's optimize package (package fit) and plots of the data against the back-calculated
	values (package relaxplot).

The optimizer's search strategy, the reading and writing of data files and the handling of
structures are left to the user.
*/
package relax
