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

/*
Package diffusion implements the geometry of the global rotational diffusion tensor
of a molecule, as needed for the model-free spectral density.

Three kinds of tensor are supported: the sphere (isotropic, parameters [tm]),
the spheroid (axially symmetric, [tm, Da, theta, phi]) and the ellipsoid
(fully anisotropic, [tm, Da, Dr, alpha, beta, gamma], with zyz Euler angles).
For a given interaction (XH) unit vector, a Geometry holds the weights of each
spectral component, the correlation time of each component and the direction cosines
of the vector in the frame of the tensor, each as a Jet: the value together with its
gradient and Hessian over the parameters of the tensor kind.

The package also offers the conversion between the parameters and the 3x3 tensor
(through its eigenvalues and principal axes), and the folding of the orientation
angles into their canonical domain.
*/
package diffusion
