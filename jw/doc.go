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

/*
Package jw implements the model-free spectral density J(w) and its exact
gradient and Hessian over the parameters of the diffusion tensor and the
internal-motion parameters of a spin.

The formula to use depends on the kind of diffusion tensor, the model-free
equation (original, extended or extended2) and on which internal parameters
are present. That choice is made once, by NewForm, which returns a Form: a short list of
weighted Lorentzian terms, each with its amplitude (a polynomial in the order parameters)
and its optional internal correlation time. Bind then tells the Form where,
in the derivative vector of the spin, each parameter goes. Eval does no further
dispatching.
*/
package jw
